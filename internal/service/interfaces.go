package service

import (
	"context"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/types"
)

// IAccountService defines the interface for account and session operations
type IAccountService interface {
	Register(ctx context.Context, name, email, password string) (*models.Account, string, error)
	Login(ctx context.Context, email, password string) (*models.Account, string, error)
	Logout(ctx context.Context, userID, sessionID string)
	CurrentUser(ctx context.Context, userID string) (*models.Account, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID, fallbackName string) models.UserProfile
	SaveProfile(ctx context.Context, userID string, profile models.UserProfile) (models.UserProfile, error)
}

// IHydrationService defines the interface for daily water tracking
type IHydrationService interface {
	Intake(ctx context.Context, userID string) int
	AddWater(ctx context.Context, userID string, ml int) (int, error)
	Progress(ctx context.Context, userID string, profile models.UserProfile) HydrationProgress
}

// ICheckInService defines the interface for daily meal check-ins
type ICheckInService interface {
	CheckedMeals(ctx context.Context, userID string) []string
	ToggleMeal(ctx context.Context, userID, mealKey string) ([]string, error)
	Summary(ctx context.Context, userID string) CheckInSummary
}

// ILibraryService defines the interface for saved plans and recipes
type ILibraryService interface {
	ListPlans(ctx context.Context, userID string) []models.MealPlan
	GetPlan(ctx context.Context, userID, planID string) (*models.MealPlan, error)
	SavePlan(ctx context.Context, userID string, plan models.MealPlan) (*models.MealPlan, error)
	RenamePlan(ctx context.Context, userID, planID, name string) (*models.MealPlan, error)
	DeletePlan(ctx context.Context, userID, planID string) error
	LatestPlan(ctx context.Context, userID string) (*models.MealPlan, bool)

	ListRecipes(ctx context.Context, userID string) []models.Recipe
	GetRecipe(ctx context.Context, userID, recipeID string) (*models.Recipe, error)
	SaveRecipe(ctx context.Context, userID string, recipe models.Recipe) (*models.Recipe, error)
	RenameRecipe(ctx context.Context, userID, recipeID, name string) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, userID, recipeID string) error
}

// IPlannerService defines the interface for AI generation
type IPlannerService interface {
	GenerateMealPlan(ctx context.Context, profile models.UserProfile, request string) (*models.MealPlan, error)
	GenerateRecipe(ctx context.Context, profile models.UserProfile, request string) (*models.Recipe, error)
	ReplaceMeal(ctx context.Context, userID string, profile models.UserProfile, planID, mealKey, request string) (*models.MealPlan, error)
	DailyTip(ctx context.Context, userID string, profile models.UserProfile) (string, error)
}

// ICoachService defines the interface for the nutrition coach chat
type ICoachService interface {
	History(ctx context.Context, userID string, profile models.UserProfile) []models.ChatMessage
	Send(ctx context.Context, userID string, profile models.UserProfile, message string) (string, []models.ChatMessage, error)
	Reset(ctx context.Context, userID string)
}
