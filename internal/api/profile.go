package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

type ProfileHandler struct {
	profiles service.IProfileService
	theme    *service.ThemeService
}

func NewProfileHandler(profiles service.IProfileService, theme *service.ThemeService) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		theme:    theme,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
	}

	router.GET("/theme", h.GetTheme)
	router.PUT("/theme", h.SetTheme)
}

type profileResponse struct {
	models.UserProfile
	Complete bool `json:"complete"`
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile := h.profiles.GetProfile(c.Request.Context(), middleware.UserID(c), middleware.UserName(c))
	c.JSON(http.StatusOK, profileResponse{UserProfile: profile, Complete: profile.IsComplete()})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var profile models.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	saved, err := h.profiles.SaveProfile(c.Request.Context(), middleware.UserID(c), profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{UserProfile: saved, Complete: saved.IsComplete()})
}

func (h *ProfileHandler) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"theme": h.theme.Theme(c.Request.Context(), middleware.UserID(c))})
}

func (h *ProfileHandler) SetTheme(c *gin.Context) {
	var req types.ThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if err := h.theme.SetTheme(c.Request.Context(), middleware.UserID(c), req.Theme); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
