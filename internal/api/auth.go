package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/middleware"
	"github.com/pageza/nutriai/backend/internal/service"
	"github.com/pageza/nutriai/backend/internal/types"
)

type AuthHandler struct {
	accounts service.IAccountService
}

func NewAuthHandler(accounts service.IAccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterRoutes mounts the public auth routes on public and the
// authenticated ones on protected.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	auth := public.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	account, token, err := h.accounts.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, types.AuthResponse{Token: token, User: account.Public()})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	account, token, err := h.accounts.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.AuthResponse{Token: token, User: account.Public()})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.accounts.Logout(c.Request.Context(), middleware.UserID(c), middleware.SessionID(c))
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	account, err := h.accounts.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account.Public())
}
