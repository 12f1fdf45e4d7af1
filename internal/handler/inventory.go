package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/apierror"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/middleware"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/service"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

func actorID(c *gin.Context) *uuid.UUID {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return nil
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil
	}
	return &id
}

// ListStock godoc
// @Summary      Current stock levels
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.StockItemResponse
// @Router       /v1/inventory/stock [get]
func (h *InventoryHandler) ListStock(c *gin.Context) {
	resp, err := h.svc.ListStock(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListMovements godoc
// @Summary      Stock movement history
// @Description  Append-only ledger; filter by product and movement type.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        product_id query string false "Product UUID"
// @Param        type       query string false "sale | adjustment | receipt | return | damaged"
// @Param        page       query int    false "Page (default 1)"
// @Param        limit      query int    false "Rows per page (default 50)"
// @Success      200 {object} dto.MovementListResponse
// @Router       /v1/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	var filter dto.MovementFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receive godoc
// @Summary      Receive stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReceiveStockRequest true "Receipt"
// @Success      201 {object} dto.MovementResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/inventory/receive [post]
func (h *InventoryHandler) Receive(c *gin.Context) {
	var req dto.ReceiveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReceiveStock(c.Request.Context(), req, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Return godoc
// @Summary      Return stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ReturnStockRequest true "Return"
// @Success      201 {object} dto.MovementResponse
// @Router       /v1/inventory/return [post]
func (h *InventoryHandler) Return(c *gin.Context) {
	var req dto.ReturnStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ReturnStock(c.Request.Context(), req, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Adjust godoc
// @Summary      Adjust stock
// @Description  Signed manual correction; notes are mandatory for the audit trail.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AdjustStockRequest true "Adjustment"
// @Success      201 {object} dto.MovementResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/inventory/adjust [post]
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req dto.AdjustStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AdjustStock(c.Request.Context(), req, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Damage godoc
// @Summary      Write off damaged stock
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DamageStockRequest true "Write-off"
// @Success      201 {object} dto.MovementResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/inventory/damage [post]
func (h *InventoryHandler) Damage(c *gin.Context) {
	var req dto.DamageStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordDamage(c.Request.Context(), req, actorID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListAlerts godoc
// @Summary      Stock alerts
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "active | acknowledged | resolved | all (default active)"
// @Success      200 {array} dto.AlertResponse
// @Router       /v1/inventory/alerts [get]
func (h *InventoryHandler) ListAlerts(c *gin.Context) {
	status := c.DefaultQuery("status", "active")
	resp, err := h.svc.ListAlerts(c.Request.Context(), status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAlert godoc
// @Summary      Acknowledge or resolve an alert
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Alert UUID"
// @Param        body body dto.UpdateAlertRequest true "New status"
// @Success      200 {object} dto.AlertResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/inventory/alerts/{id} [patch]
func (h *InventoryHandler) UpdateAlert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid alert id"))
		return
	}
	var req dto.UpdateAlertRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateAlert(c.Request.Context(), id, req.Status)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
