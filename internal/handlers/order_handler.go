package handlers

import (
	"net/http"

	"github.com/jhaanurag/multivendor-ecom-sub000/internal/models"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/validation"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
)

// ResCheckout is the flow-control resource guarding order placement.
const ResCheckout = "checkout_api"

type OrderHandler struct {
	orders   *services.OrderService
	validate *validatorv10.Validate
}

func NewOrderHandler(orders *services.OrderService, validate *validatorv10.Validate) *OrderHandler {
	return &OrderHandler{orders: orders, validate: validate}
}

// Create places an order. The optional Idempotency-Key header makes the
// call safe to retry; a replay returns the original order with 200.
func (h *OrderHandler) Create(c *gin.Context) {
	e, b := sentinel.Entry(ResCheckout, sentinel.WithTrafficType(base.Inbound))
	if b != nil {
		response.Error(c, http.StatusTooManyRequests, "checkout is busy, try again shortly")
		return
	}
	defer e.Exit()

	var req validation.CreateOrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	lines := make([]models.Line, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, models.Line{ProductID: p.ProductID, Quantity: p.Quantity})
	}

	userID, _ := currentUser(c)
	order, replayed, err := h.orders.PlaceOrder(c.Request.Context(), userID, lines, req.ShippingAddress, c.GetHeader("Idempotency-Key"))
	if err != nil {
		writeError(c, err)
		return
	}
	if replayed {
		response.Success(c, order)
		return
	}
	response.Created(c, order)
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	userID, _ := currentUser(c)
	orders, err := h.orders.MyOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	userID, role := currentUser(c)
	order, err := h.orders.GetOrder(c.Request.Context(), userID, role, id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, order)
}

// VendorOrders lists the sub-orders addressed to the caller's shop.
func (h *OrderHandler) VendorOrders(c *gin.Context) {
	userID, _ := currentUser(c)
	subs, err := h.orders.VendorOrders(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, subs)
}

// UpdateStatus moves one sub-order through the fulfillment lifecycle.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		return
	}
	var req validation.UpdateStatusRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	userID, role := currentUser(c)
	sub, err := h.orders.UpdateSubOrderStatus(c.Request.Context(), userID, role, id, models.SubOrderStatus(req.Status))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, sub)
}
