package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/apierror"
	"github.com/Ali-oss-cell/pizza-store-backend-au-sub000/internal/service"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// statusFor maps service sentinel errors to HTTP statuses. Unknown errors are
// internal failures.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrSizeNotFound),
		errors.Is(err, service.ErrToppingNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrStockItemNotFound),
		errors.Is(err, service.ErrAlertNotFound),
		errors.Is(err, service.ErrPromotionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidStatusChange),
		errors.Is(err, service.ErrEmptyOrder),
		errors.Is(err, service.ErrDeliveryAddressMissing),
		errors.Is(err, service.ErrZeroAdjustment),
		errors.Is(err, service.ErrProductUnavailable),
		errors.Is(err, service.ErrSizeNotOffered),
		errors.Is(err, service.ErrPromotionInactive),
		errors.Is(err, service.ErrPromotionExpired),
		errors.Is(err, service.ErrPromotionUsageExhausted),
		errors.Is(err, service.ErrPromotionMinimumNotMet),
		errors.Is(err, service.ErrUsernameTaken):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrUserInactive):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// fail writes the error envelope, hiding internals behind a generic message
// for unexpected errors.
func fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, apierror.New("Internal server error"))
		return
	}
	c.JSON(status, apierror.New(err.Error()))
}
