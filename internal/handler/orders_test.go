package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/service"
)

// stubOrderService returns canned responses; errors are injected per test.
type stubOrderService struct {
	createErr error
	created   *dto.CreateOrderResponse
	trackErr  error
	tracked   *dto.OrderResponse
}

func (s *stubOrderService) CreateOrder(_ context.Context, _ dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return s.created, nil
}

func (s *stubOrderService) UpdateStatus(_ context.Context, _ uuid.UUID, _ string) (*dto.UpdateOrderStatusResponse, error) {
	return nil, service.ErrOrderNotFound
}

func (s *stubOrderService) GetByID(_ context.Context, _ uuid.UUID) (*dto.OrderResponse, error) {
	return s.tracked, s.trackErr
}

func (s *stubOrderService) GetByNumber(_ context.Context, _ string) (*dto.OrderResponse, error) {
	if s.trackErr != nil {
		return nil, s.trackErr
	}
	return s.tracked, nil
}

func (s *stubOrderService) ListOrders(_ context.Context, _ dto.OrderFilter) (*dto.OrderListResponse, error) {
	return &dto.OrderListResponse{Page: 1, Limit: 50}, nil
}

func (s *stubOrderService) Stats(_ context.Context) (*dto.OrderStatsResponse, error) {
	return &dto.OrderStatsResponse{}, nil
}

var _ service.OrderService = (*stubOrderService)(nil)

func newOrderRouter(svc service.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewOrdersHandler(svc)
	r.POST("/v1/orders", h.Create)
	r.GET("/v1/orders/:number", h.Track)
	r.PATCH("/v1/orders/:id/status", h.UpdateStatus)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validCreateBody() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		CustomerName:  "Alex Nguyen",
		CustomerPhone: "0400123456",
		OrderType:     "pickup",
		Items: []dto.OrderItemRequest{
			{ProductID: uuid.NewString(), Quantity: 1},
		},
	}
}

func TestCreateOrderHandler_Created(t *testing.T) {
	svc := &stubOrderService{created: &dto.CreateOrderResponse{
		Success: true,
		Message: "Order ORD-20250615-AB12 created",
		Order:   &dto.OrderResponse{OrderNumber: "ORD-20250615-AB12"},
	}}
	r := newOrderRouter(svc)

	w := postJSON(t, r, "/v1/orders", validCreateBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.CreateOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ORD-20250615-AB12", resp.Order.OrderNumber)
}

func TestCreateOrderHandler_ValidationFailure(t *testing.T) {
	r := newOrderRouter(&stubOrderService{})

	body := validCreateBody()
	body.Items = nil
	w := postJSON(t, r, "/v1/orders", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body = validCreateBody()
	body.OrderType = "drone"
	w = postJSON(t, r, "/v1/orders", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateOrderHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{service.ErrProductNotFound, http.StatusNotFound},
		{service.ErrInsufficientStock, http.StatusConflict},
		{service.ErrPromotionExpired, http.StatusBadRequest},
		{service.ErrProductUnavailable, http.StatusBadRequest},
	}
	for _, tc := range cases {
		r := newOrderRouter(&stubOrderService{createErr: tc.err})
		w := postJSON(t, r, "/v1/orders", validCreateBody())
		assert.Equal(t, tc.code, w.Code, tc.err.Error())
	}
}

func TestTrackHandler_NotFound(t *testing.T) {
	r := newOrderRouter(&stubOrderService{trackErr: service.ErrOrderNotFound})
	req := httptest.NewRequest(http.MethodGet, "/v1/orders/ORD-20250615-ZZ99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusHandler_BadID(t *testing.T) {
	r := newOrderRouter(&stubOrderService{})
	raw, _ := json.Marshal(dto.UpdateOrderStatusRequest{Status: "preparing"})
	req := httptest.NewRequest(http.MethodPatch, "/v1/orders/not-a-uuid/status", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
