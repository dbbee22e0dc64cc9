package handlers

import (
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/validation"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type CartHandler struct {
	cart     *services.CartService
	validate *validatorv10.Validate
}

func NewCartHandler(cart *services.CartService, validate *validatorv10.Validate) *CartHandler {
	return &CartHandler{cart: cart, validate: validate}
}

func (h *CartHandler) SetItem(c *gin.Context) {
	var req validation.CartItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	userID, _ := currentUser(c)
	if err := h.cart.SetItem(c.Request.Context(), userID, req.ProductID, req.Quantity); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CartHandler) Items(c *gin.Context) {
	userID, _ := currentUser(c)
	entries, err := h.cart.Items(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	var total float64
	for _, e := range entries {
		total += e.Subtotal
	}
	response.Success(c, gin.H{"items": entries, "total": total})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	id, err := pathID(c, "productId")
	if err != nil {
		return
	}
	userID, _ := currentUser(c)
	if err := h.cart.RemoveItem(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *CartHandler) Clear(c *gin.Context) {
	userID, _ := currentUser(c)
	if err := h.cart.Clear(c.Request.Context(), userID); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
