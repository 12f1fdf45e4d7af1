package worker

// email_worker.go
// Processes notification jobs: order confirmations to customers and low-stock
// alerts to staff. All SMTP traffic goes through the circuit breaker so a dead
// mail server fast-fails instead of blocking the pool.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/infra"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/repository"
)

// OrderConfirmationPayload is the job envelope for QueueOrderConfirmation.
type OrderConfirmationPayload struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Email       string `json:"email"`
}

// LowStockPayload is the job envelope for QueueLowStock.
type LowStockPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Message   string `json:"message"`
}

type EmailWorker struct {
	mailer     *infra.Mailer
	breaker    *infra.CircuitBreaker
	orders     repository.OrderRepository
	storeName  string
	alertEmail string
}

func NewEmailWorker(mailer *infra.Mailer, breaker *infra.CircuitBreaker, orders repository.OrderRepository, storeName, alertEmail string) *EmailWorker {
	return &EmailWorker{
		mailer:     mailer,
		breaker:    breaker,
		orders:     orders,
		storeName:  storeName,
		alertEmail: alertEmail,
	}
}

// ProcessOrderConfirmation sends the customer their order summary.
func (w *EmailWorker) ProcessOrderConfirmation(ctx context.Context, raw json.RawMessage) error {
	var payload OrderConfirmationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid confirmation payload")
		return nil // malformed payloads are not retryable
	}
	if payload.Email == "" {
		log.Warn().Str("order", payload.OrderNumber).Msg("email_worker: no customer email, skipping")
		return nil
	}

	order, err := w.orders.FindByNumber(ctx, payload.OrderNumber)
	if err != nil {
		return fmt.Errorf("email_worker: load order %s: %w", payload.OrderNumber, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order at %s!\n\nOrder %s\n\n", order.CustomerName, w.storeName, order.OrderNumber)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %d x %s", item.Quantity, item.ProductName)
		if item.SizeName != nil {
			fmt.Fprintf(&b, " (%s)", *item.SizeName)
		}
		fmt.Fprintf(&b, " — $%s\n", item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nSubtotal: $%s\n", order.Subtotal.StringFixed(2))
	if order.DeliveryFee.IsPositive() {
		fmt.Fprintf(&b, "Delivery: $%s\n", order.DeliveryFee.StringFixed(2))
	}
	if order.DiscountAmount.IsPositive() {
		fmt.Fprintf(&b, "Discount: -$%s\n", order.DiscountAmount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s\n", order.Total.StringFixed(2))

	subject := fmt.Sprintf("%s — order %s confirmed", w.storeName, order.OrderNumber)
	err = w.breaker.Execute(func() error {
		return w.mailer.Send(payload.Email, subject, b.String())
	})
	if err != nil {
		return fmt.Errorf("email_worker: send confirmation: %w", err)
	}
	log.Info().Str("to", payload.Email).Str("order", order.OrderNumber).Msg("email_worker: confirmation sent")
	return nil
}

// ProcessLowStockAlert notifies the configured staff address.
func (w *EmailWorker) ProcessLowStockAlert(_ context.Context, raw json.RawMessage) error {
	var payload LowStockPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid low-stock payload")
		return nil
	}
	if w.alertEmail == "" {
		log.Warn().Msg("email_worker: no alert email configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("%s — stock alert", w.storeName)
	body := fmt.Sprintf("%s\n\nProduct: %s\nRemaining: %d\n", payload.Message, payload.ProductID, payload.Quantity)
	err := w.breaker.Execute(func() error {
		return w.mailer.Send(w.alertEmail, subject, body)
	})
	if err != nil {
		return fmt.Errorf("email_worker: send low-stock alert: %w", err)
	}
	log.Info().Str("product", payload.ProductID).Msg("email_worker: low-stock alert sent")
	return nil
}
