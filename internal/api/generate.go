package api

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

// GenerateHandler serves AI generation. planner may be nil when no model is
// configured, in which case every route answers 503.
type GenerateHandler struct {
	planner  service.IPlannerService
	library  service.ILibraryService
	profiles service.IProfileService
	limiter  *middleware.RateLimiter
}

func NewGenerateHandler(planner service.IPlannerService, library service.ILibraryService, profiles service.IProfileService, limiter *middleware.RateLimiter) *GenerateHandler {
	return &GenerateHandler{
		planner:  planner,
		library:  library,
		profiles: profiles,
		limiter:  limiter,
	}
}

func (h *GenerateHandler) RegisterRoutes(router *gin.RouterGroup) {
	limited := []gin.HandlerFunc{h.requirePlanner}
	if h.limiter != nil {
		limited = append(limited, h.limiter.RateLimitMiddleware())
	}
	onboarded := slices.Concat(limited, []gin.HandlerFunc{middleware.RequireCompleteProfile(h.profiles)})

	generate := router.Group("/generate")
	{
		generate.POST("/plan", slices.Concat(onboarded, []gin.HandlerFunc{h.GeneratePlan})...)
		generate.POST("/recipe", slices.Concat(limited, []gin.HandlerFunc{h.GenerateRecipe})...)
	}
	router.POST("/plans/:id/replace", slices.Concat(onboarded, []gin.HandlerFunc{h.ReplaceMeal})...)
	router.GET("/tip", h.requirePlanner, h.DailyTip)
}

func (h *GenerateHandler) requirePlanner(c *gin.Context) {
	if h.planner == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: "AI generation is not configured"})
		return
	}
	c.Next()
}

func (h *GenerateHandler) GeneratePlan(c *gin.Context) {
	var req types.GeneratePlanRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body")
			return
		}
	}

	ctx := c.Request.Context()
	profile, _ := middleware.Profile(c)
	plan, err := h.planner.GenerateMealPlan(ctx, profile, req.Preferences)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Save {
		if plan, err = h.library.SavePlan(ctx, middleware.UserID(c), *plan); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, plan)
}

func (h *GenerateHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "query is required")
		return
	}

	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	profile := h.profiles.GetProfile(ctx, userID, middleware.UserName(c))
	recipe, err := h.planner.GenerateRecipe(ctx, profile, req.Query)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Save {
		if recipe, err = h.library.SaveRecipe(ctx, userID, *recipe); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *GenerateHandler) ReplaceMeal(c *gin.Context) {
	var req types.ReplaceMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "mealKey is required")
		return
	}

	profile, _ := middleware.Profile(c)
	plan, err := h.planner.ReplaceMeal(c.Request.Context(), middleware.UserID(c), profile, c.Param("id"), req.MealKey, req.Request)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *GenerateHandler) DailyTip(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)
	profile := h.profiles.GetProfile(ctx, userID, middleware.UserName(c))

	tip, err := h.planner.DailyTip(ctx, userID, profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tip": tip})
}
