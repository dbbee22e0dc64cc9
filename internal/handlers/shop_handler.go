package handlers

import (
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/validation"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type ShopHandler struct {
	catalog  *services.CatalogService
	validate *validatorv10.Validate
}

func NewShopHandler(catalog *services.CatalogService, validate *validatorv10.Validate) *ShopHandler {
	return &ShopHandler{catalog: catalog, validate: validate}
}

func (h *ShopHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	profile, err := h.catalog.GetShop(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateMine edits the caller's own shop.
func (h *ShopHandler) UpdateMine(c *gin.Context) {
	var req validation.UpdateShopRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	userID, _ := currentUser(c)
	shop, err := h.catalog.UpdateShop(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, shop)
}
