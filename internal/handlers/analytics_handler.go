package handlers

import (
	"github.com/jhaanurag/multivendor-ecom-sub000/internal/services"
	"github.com/jhaanurag/multivendor-ecom-sub000/pkg/response"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// VendorStats returns the caller's shop dashboard numbers.
func (h *AnalyticsHandler) VendorStats(c *gin.Context) {
	userID, _ := currentUser(c)
	stats, err := h.analytics.VendorStats(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stats)
}

func (h *AnalyticsHandler) AdminStats(c *gin.Context) {
	stats, err := h.analytics.AdminStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, stats)
}
