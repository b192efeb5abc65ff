package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/types"
)

// ContextProfile holds the models.UserProfile loaded by RequireCompleteProfile.
const ContextProfile = "profile"

// ProfileLookup loads the profile of a user.
type ProfileLookup interface {
	GetProfile(ctx context.Context, userID, fallbackName string) models.UserProfile
}

// RequireCompleteProfile rejects users who have not finished onboarding
// (age, weight and height) and stores the profile in the context otherwise.
// It must run after AuthMiddleware.
func RequireCompleteProfile(profiles ProfileLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{Error: "unauthorized"})
			return
		}

		profile := profiles.GetProfile(c.Request.Context(), userID, UserName(c))
		if !profile.IsComplete() {
			c.AbortWithStatusJSON(http.StatusPreconditionRequired, types.ErrorResponse{
				Error: "complete your profile (age, weight and height) first",
			})
			return
		}

		c.Set(ContextProfile, profile)
		c.Next()
	}
}

// Profile returns the profile stored by RequireCompleteProfile.
func Profile(c *gin.Context) (models.UserProfile, bool) {
	v, ok := c.Get(ContextProfile)
	if !ok {
		return models.UserProfile{}, false
	}
	profile, ok := v.(models.UserProfile)
	return profile, ok
}
