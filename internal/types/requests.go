package types

import (
	"github.com/pageza/nutriai/backend/internal/models"
)

// RegisterRequest represents the request body for creating an account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest represents the request body for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token string               `json:"token"`
	User  models.PublicAccount `json:"user"`
}

// AddWaterRequest adds Amount milliliters to today's intake.
type AddWaterRequest struct {
	Amount int `json:"amount" binding:"required,min=1,max=10000"`
}

// RenameRequest renames a saved plan or recipe.
type RenameRequest struct {
	Name string `json:"name" binding:"required"`
}

// GeneratePlanRequest asks for a new meal plan. Fields left empty fall back
// to the saved profile.
type GeneratePlanRequest struct {
	Preferences string `json:"preferences"`
	Save        bool   `json:"save"`
}

// GenerateRecipeRequest asks for a recipe matching Query.
type GenerateRecipeRequest struct {
	Query string `json:"query" binding:"required"`
	Save  bool   `json:"save"`
}

// ReplaceMealRequest asks for a new meal in MealKey of a saved plan.
type ReplaceMealRequest struct {
	MealKey string `json:"mealKey" binding:"required"`
	Request string `json:"request"`
}

// ChatRequest is one message to the nutrition coach.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatResponse carries the coach's reply and today's conversation.
type ChatResponse struct {
	Reply    string               `json:"reply,omitempty"`
	Messages []models.ChatMessage `json:"messages"`
}

// ThemeRequest sets the UI theme.
type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
