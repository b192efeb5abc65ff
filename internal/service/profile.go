package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
)

var ErrInvalidProfile = errors.New("invalid profile")

// ProfileService handles user profile operations
type ProfileService struct {
	store *storage.KeyValueStore
}

// Ensure ProfileService implements IProfileService
var _ IProfileService = (*ProfileService)(nil)

// NewProfileService creates a new ProfileService instance
func NewProfileService(store *storage.KeyValueStore) *ProfileService {
	return &ProfileService{
		store: store,
	}
}

// DefaultProfile is the profile of a user who has not filled one in yet.
func DefaultProfile(name string) models.UserProfile {
	return models.UserProfile{
		Name: name,
		Goal: models.GoalMaintainWeight,
	}
}

// GetProfile retrieves a user's profile. A user without one gets the default
// profile named fallbackName, which is persisted.
func (s *ProfileService) GetProfile(ctx context.Context, userID, fallbackName string) models.UserProfile {
	key := storage.UserKey(profilePrefix, userID)
	profile := storage.Get[*models.UserProfile](ctx, s.store, key, nil)
	if profile != nil {
		return *profile
	}

	def := DefaultProfile(fallbackName)
	storage.Set(ctx, s.store, key, def)
	return def
}

// SaveProfile validates and stores profile.
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, profile models.UserProfile) (models.UserProfile, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if err := ValidateProfile(profile); err != nil {
		return models.UserProfile{}, err
	}

	storage.Set(ctx, s.store, storage.UserKey(profilePrefix, userID), profile)
	return profile, nil
}

// Upper bounds for body measurements.
const (
	maxWeightKg = 1000
	maxHeightCm = 300
)

// ValidateProfile rejects unknown goals, out of range measurements and missing names.
func ValidateProfile(p models.UserProfile) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProfile)
	case !p.Goal.Valid():
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidProfile, p.Goal)
	case p.Age < 0 || p.Age > 150:
		return fmt.Errorf("%w: age out of range", ErrInvalidProfile)
	case p.Weight < 0 || p.Height < 0:
		return fmt.Errorf("%w: weight and height must not be negative", ErrInvalidProfile)
	case !(p.Weight <= maxWeightKg):
		return fmt.Errorf("%w: weight must be at most %d kg", ErrInvalidProfile, maxWeightKg)
	case !(p.Height <= maxHeightCm):
		return fmt.Errorf("%w: height must be at most %d cm", ErrInvalidProfile, maxHeightCm)
	}
	return nil
}
