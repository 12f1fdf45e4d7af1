package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/apierror"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/dto"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/service"
)

type PromotionsHandler struct{ svc service.PromotionService }

func NewPromotionsHandler(svc service.PromotionService) *PromotionsHandler {
	return &PromotionsHandler{svc: svc}
}

// Validate godoc
// @Summary      Preview a promotion code
// @Description  Read-only check: validates the code and returns the discount it would yield. Never consumes usage.
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Param        body body dto.ValidatePromotionRequest true "Code and order context"
// @Success      200 {object} dto.ValidatePromotionResponse
// @Router       /v1/promotions/validate [post]
func (h *PromotionsHandler) Validate(c *gin.Context) {
	var req dto.ValidatePromotionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Validate(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create a promotion
// @Tags         promotions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreatePromotionRequest true "Promotion"
// @Success      201 {object} dto.PromotionResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/promotions [post]
func (h *PromotionsHandler) Create(c *gin.Context) {
	var req dto.CreatePromotionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List promotions
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.PromotionResponse
// @Router       /v1/promotions [get]
func (h *PromotionsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Get a promotion
// @Tags         promotions
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Promotion UUID"
// @Success      200 {object} dto.PromotionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/promotions/{id} [get]
func (h *PromotionsHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid promotion id"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Deactivate godoc
// @Summary      Deactivate a promotion
// @Tags         promotions
// @Security     BearerAuth
// @Param        id path string true "Promotion UUID"
// @Success      204
// @Router       /v1/promotions/{id} [delete]
func (h *PromotionsHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid promotion id"))
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), id, false); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reactivate godoc
// @Summary      Reactivate a promotion
// @Tags         promotions
// @Security     BearerAuth
// @Param        id path string true "Promotion UUID"
// @Success      204
// @Router       /v1/promotions/{id}/reactivate [patch]
func (h *PromotionsHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid promotion id"))
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), id, true); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
