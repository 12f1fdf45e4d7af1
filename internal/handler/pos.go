package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/service"
)

// POSHandler is the staff-facing order entry surface. It funnels through the
// same order builder as web checkout — same pricing, same stock deduction,
// same promotion accounting.
type POSHandler struct{ svc service.OrderService }

func NewPOSHandler(svc service.OrderService) *POSHandler { return &POSHandler{svc: svc} }

// CreateOrder godoc
// @Summary      Enter an order at the counter
// @Description  Staff order entry; bypasses the web cart but runs the identical transaction as checkout.
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateOrderRequest true "Order details"
// @Success      201 {object} dto.CreateOrderResponse
// @Failure      400 {object} apierror.APIError
// @Failure      409 {object} apierror.APIError
// @Router       /v1/pos/orders [post]
func (h *POSHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateOrder(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
