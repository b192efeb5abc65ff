package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

// CoachHandler serves the nutrition coach chat. coach may be nil when no
// model is configured, in which case every route answers 503.
type CoachHandler struct {
	coach    service.ICoachService
	profiles service.IProfileService
	limiter  *middleware.RateLimiter
}

func NewCoachHandler(coach service.ICoachService, profiles service.IProfileService, limiter *middleware.RateLimiter) *CoachHandler {
	return &CoachHandler{
		coach:    coach,
		profiles: profiles,
		limiter:  limiter,
	}
}

func (h *CoachHandler) RegisterRoutes(router *gin.RouterGroup) {
	chat := router.Group("/chat", h.requireCoach)
	{
		chat.GET("", h.History)
		if h.limiter != nil {
			chat.POST("", h.limiter.RateLimitMiddleware(), h.Send)
		} else {
			chat.POST("", h.Send)
		}
		chat.DELETE("", h.Reset)
	}
}

func (h *CoachHandler) requireCoach(c *gin.Context) {
	if h.coach == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "AI generation is not configured"})
		return
	}
	c.Next()
}

func (h *CoachHandler) History(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	profile := h.profiles.GetProfile(ctx, userID, middleware.UserName(c))
	c.JSON(http.StatusOK, types.ChatResponse{Messages: h.coach.History(ctx, userID, profile)})
}

func (h *CoachHandler) Send(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "message is required and must be at most 2000 characters")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	profile := h.profiles.GetProfile(ctx, userID, middleware.UserName(c))
	reply, messages, err := h.coach.Send(ctx, userID, profile, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ChatResponse{Reply: reply, Messages: messages})
}

func (h *CoachHandler) Reset(c *gin.Context) {
	h.coach.Reset(c.Request.Context(), middleware.UserID(c))
	c.Status(http.StatusNoContent)
}
