package service

import (
	"context"
	"testing"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileDefault(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))

	profile := svc.GetProfile(ctx, "u1", "Ana")
	assert.Equal(t, "Ana", profile.Name)
	assert.Equal(t, models.GoalMaintainWeight, profile.Goal)
	assert.False(t, profile.IsComplete())

	// The default is persisted, so a later name does not replace it.
	assert.Equal(t, "Ana", svc.GetProfile(ctx, "u1", "Other").Name)
}

func TestSaveProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))

	saved, err := svc.SaveProfile(ctx, "u1", models.UserProfile{
		Name:   " Ana ",
		Age:    30,
		Weight: 62,
		Height: 168,
		Goal:   models.GoalLoseWeight,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", saved.Name)
	assert.True(t, saved.IsComplete())

	got := svc.GetProfile(ctx, "u1", "ignored")
	assert.Equal(t, saved, got)
}

func TestSaveProfileValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))
	valid := models.UserProfile{Name: "Ana", Goal: models.GoalGainMuscle}

	tests := []struct {
		name   string
		mutate func(*models.UserProfile)
	}{
		{"empty name", func(p *models.UserProfile) { p.Name = "" }},
		{"unknown goal", func(p *models.UserProfile) { p.Goal = "bulk" }},
		{"negative age", func(p *models.UserProfile) { p.Age = -1 }},
		{"negative weight", func(p *models.UserProfile) { p.Weight = -70 }},
		{"negative height", func(p *models.UserProfile) { p.Height = -1 }},
		{"weight too large", func(p *models.UserProfile) { p.Weight = 1e300 }},
		{"height too large", func(p *models.UserProfile) { p.Height = 301 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			_, err := svc.SaveProfile(ctx, "u1", p)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestTheme(t *testing.T) {
	ctx := context.Background()
	svc := NewThemeService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))

	assert.Equal(t, ThemeLight, svc.Theme(ctx, "u1"))
	require.NoError(t, svc.SetTheme(ctx, "u1", ThemeDark))
	assert.Equal(t, ThemeDark, svc.Theme(ctx, "u1"))
	assert.Equal(t, ThemeLight, svc.Theme(ctx, "u2"))
	assert.ErrorIs(t, svc.SetTheme(ctx, "u1", "blue"), ErrInvalidTheme)
}
