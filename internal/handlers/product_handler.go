package handlers

import (
	"net/http"
	"strconv"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/repository"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/validation"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

type ProductHandler struct {
	catalog  *services.CatalogService
	validate *validatorv10.Validate
}

func NewProductHandler(catalog *services.CatalogService, validate *validatorv10.Validate) *ProductHandler {
	return &ProductHandler{catalog: catalog, validate: validate}
}

func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	shopID, _ := strconv.ParseUint(c.DefaultQuery("shop_id", "0"), 10, 32)
	minPrice, _ := strconv.ParseFloat(c.DefaultQuery("min_price", "0"), 64)
	maxPrice, _ := strconv.ParseFloat(c.DefaultQuery("max_price", "0"), 64)

	filter := repository.ProductFilter{
		Query:    c.Query("query"),
		ShopID:   uint(shopID),
		Tag:      c.Query("tag"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
	}

	products, total, err := h.catalog.List(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, gin.H{
		"products":  products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	userID, _ := currentUser(c)
	product, err := h.catalog.CreateProduct(c.Request.Context(), userID, services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Created(c, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	userID, role := currentUser(c)
	product, err := h.catalog.UpdateProduct(c.Request.Context(), userID, role, id, services.ProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Tags:        req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	userID, role := currentUser(c)
	if err := h.catalog.DeleteProduct(c.Request.Context(), userID, role, id); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *ProductHandler) Rate(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	var req validation.RateProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	if err := h.catalog.RateProduct(c.Request.Context(), id, req.Rating); err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, nil)
}

// pathID parses a :id path segment; on failure it writes a 400 and returns
// a non-nil error.
func pathID(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "invalid id")
		return 0, errInvalidID
	}
	return uint(id), nil
}
