package service

import (
	"context"
	"errors"

	"github.com/pageza/nutriai/backend/internal/storage"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeService stores the UI theme per user.
type ThemeService struct {
	store *storage.KeyValueStore
}

// NewThemeService creates a new ThemeService instance
func NewThemeService(store *storage.KeyValueStore) *ThemeService {
	return &ThemeService{store: store}
}

// Theme returns the user's theme, light when unset or unrecognized.
func (s *ThemeService) Theme(ctx context.Context, userID string) string {
	theme := storage.Get(ctx, s.store, storage.UserKey(themePrefix, userID), ThemeLight)
	if theme != ThemeDark {
		return ThemeLight
	}
	return theme
}

func (s *ThemeService) SetTheme(ctx context.Context, userID, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return ErrInvalidTheme
	}
	storage.Set(ctx, s.store, storage.UserKey(themePrefix, userID), theme)
	return nil
}
