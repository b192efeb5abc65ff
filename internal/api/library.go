package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

type LibraryHandler struct {
	library service.ILibraryService
}

func NewLibraryHandler(library service.ILibraryService) *LibraryHandler {
	return &LibraryHandler{library: library}
}

func (h *LibraryHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.POST("", h.SavePlan)
		plans.GET("/:id", h.GetPlan)
		plans.PATCH("/:id", h.RenamePlan)
		plans.DELETE("/:id", h.DeletePlan)
	}

	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.SaveRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PATCH("/:id", h.RenameRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

func (h *LibraryHandler) ListPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": h.library.ListPlans(c.Request.Context(), middleware.UserID(c))})
}

func (h *LibraryHandler) GetPlan(c *gin.Context) {
	plan, err := h.library.GetPlan(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *LibraryHandler) SavePlan(c *gin.Context) {
	var plan models.MealPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	saved, err := h.library.SavePlan(c.Request.Context(), middleware.UserID(c), plan)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *LibraryHandler) RenamePlan(c *gin.Context) {
	var req types.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}

	plan, err := h.library.RenamePlan(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *LibraryHandler) DeletePlan(c *gin.Context) {
	if err := h.library.DeletePlan(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) ListRecipes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"recipes": h.library.ListRecipes(c.Request.Context(), middleware.UserID(c))})
}

func (h *LibraryHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.library.GetRecipe(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *LibraryHandler) SaveRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	saved, err := h.library.SaveRecipe(c.Request.Context(), middleware.UserID(c), recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (h *LibraryHandler) RenameRecipe(c *gin.Context) {
	var req types.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "name is required")
		return
	}

	recipe, err := h.library.RenameRecipe(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *LibraryHandler) DeleteRecipe(c *gin.Context) {
	if err := h.library.DeleteRecipe(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
