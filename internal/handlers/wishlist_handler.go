package handlers

import (
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type WishlistHandler struct {
	catalog  *services.CatalogService
	validate *validatorv10.Validate
}

func NewWishlistHandler(catalog *services.CatalogService, validate *validatorv10.Validate) *WishlistHandler {
	return &WishlistHandler{catalog: catalog, validate: validate}
}

func (h *WishlistHandler) List(c *gin.Context) {
	userID, _ := currentUser(c)
	products, err := h.catalog.Wishlist(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, products)
}

func (h *WishlistHandler) Add(c *gin.Context) {
	id, err := pathID(c, "productId")
	if err != nil {
		return
	}
	userID, _ := currentUser(c)
	if err := h.catalog.AddToWishlist(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *WishlistHandler) Remove(c *gin.Context) {
	id, err := pathID(c, "productId")
	if err != nil {
		return
	}
	userID, _ := currentUser(c)
	if err := h.catalog.RemoveFromWishlist(c.Request.Context(), userID, id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}
