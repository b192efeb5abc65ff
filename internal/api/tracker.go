package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

// TrackerHandler serves the daily trackers: water intake and meal check-ins.
// Both reset at the configured day boundary.
type TrackerHandler struct {
	hydration service.IHydrationService
	checkIns  service.ICheckInService
	profiles  service.IProfileService
}

func NewTrackerHandler(hydration service.IHydrationService, checkIns service.ICheckInService, profiles service.IProfileService) *TrackerHandler {
	return &TrackerHandler{
		hydration: hydration,
		checkIns:  checkIns,
		profiles:  profiles,
	}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	water := router.Group("/water")
	{
		water.GET("", h.GetWater)
		water.POST("", h.AddWater)
	}

	checkIns := router.Group("/checkins")
	{
		checkIns.GET("", h.GetCheckIns)
		checkIns.POST("/:mealKey/toggle", h.ToggleMeal)
	}
}

func (h *TrackerHandler) progress(c *gin.Context) service.HydrationProgress {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	profile := h.profiles.GetProfile(ctx, userID, middleware.UserName(c))
	return h.hydration.Progress(ctx, userID, profile)
}

func (h *TrackerHandler) GetWater(c *gin.Context) {
	c.JSON(http.StatusOK, h.progress(c))
}

func (h *TrackerHandler) AddWater(c *gin.Context) {
	var req types.AddWaterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "amount is required")
		return
	}

	if _, err := h.hydration.AddWater(c.Request.Context(), middleware.UserID(c), req.Amount); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.progress(c))
}

func (h *TrackerHandler) GetCheckIns(c *gin.Context) {
	c.JSON(http.StatusOK, h.checkIns.Summary(c.Request.Context(), middleware.UserID(c)))
}

func (h *TrackerHandler) ToggleMeal(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	if _, err := h.checkIns.ToggleMeal(ctx, userID, c.Param("mealKey")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.checkIns.Summary(ctx, userID))
}
