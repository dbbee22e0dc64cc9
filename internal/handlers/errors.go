package handlers

import (
	"errors"
	"net/http"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

var errInvalidID = errors.New("invalid id")

// writeError maps domain errors onto HTTP statuses. Anything unmapped is a
// 500 with a generic message so internals never leak to clients.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrEmptyOrder):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrForbidden):
		response.Error(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrShopNotFound),
		errors.Is(err, models.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrEmailTaken),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrPriceChanged):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrInvalidTransition):
		response.Error(c, http.StatusUnprocessableEntity, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "internal server error")
	}
}
