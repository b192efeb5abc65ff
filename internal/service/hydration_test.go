package service

import (
	"context"
	"math"
	"testing"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
	"github.com/pageza/nutriai/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWaterAccumulates(t *testing.T) {
	ctx := context.Background()
	clock := testhelpers.NewClock(t, "2024-05-10")
	svc := NewHydrationService(testhelpers.NewTestStore(t, clock))

	assert.Equal(t, 0, svc.Intake(ctx, "u1"))

	total, err := svc.AddWater(ctx, "u1", 250)
	require.NoError(t, err)
	assert.Equal(t, 250, total)

	total, err = svc.AddWater(ctx, "u1", 500)
	require.NoError(t, err)
	assert.Equal(t, 750, total)
	assert.Equal(t, 750, svc.Intake(ctx, "u1"))
	assert.Equal(t, 0, svc.Intake(ctx, "u2"))
}

func TestAddWaterRejectsNonPositive(t *testing.T) {
	ctx := context.Background()
	svc := NewHydrationService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))

	for _, ml := range []int{0, -250, MaxWaterAmount + 1, math.MaxInt} {
		_, err := svc.AddWater(ctx, "u1", ml)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Equal(t, 0, svc.Intake(ctx, "u1"))
}

func TestIntakeResetsNextDay(t *testing.T) {
	ctx := context.Background()
	clock := testhelpers.NewClock(t, "2024-05-10")
	svc := NewHydrationService(testhelpers.NewTestStore(t, clock))

	_, err := svc.AddWater(ctx, "u1", 1500)
	require.NoError(t, err)

	clock.AddDays(1)
	assert.Equal(t, 0, svc.Intake(ctx, "u1"))

	total, err := svc.AddWater(ctx, "u1", 250)
	require.NoError(t, err)
	assert.Equal(t, 250, total, "yesterday's intake must not carry over")
}

func TestDailyGoal(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		want   int
	}{
		{"unknown weight", 0, DefaultWaterGoal},
		{"70kg", 70, 2450},
		{"rounds half away from zero", 62.5, 2188},
		{"negative weight", -5, DefaultWaterGoal},
		{"weight beyond range is capped", 1e300, maxWeightKg * mlPerKg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DailyGoal(models.UserProfile{Weight: tt.weight}))
		})
	}
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	svc := NewHydrationService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))
	profile := models.UserProfile{Weight: 40} // goal 1400

	p := svc.Progress(ctx, "u1", profile)
	assert.Equal(t, 0, p.IntakeML)
	assert.Equal(t, 1400, p.GoalML)
	assert.False(t, p.GoalReached)
	assert.Equal(t, QuickAmounts, p.QuickAmounts)

	_, err := svc.AddWater(ctx, "u1", 700)
	require.NoError(t, err)
	p = svc.Progress(ctx, "u1", profile)
	assert.InDelta(t, 50.0, p.Percent, 0.001)
	assert.Equal(t, "Good start! Keep hydrating.", p.Message)

	_, err = svc.AddWater(ctx, "u1", 1000)
	require.NoError(t, err)
	p = svc.Progress(ctx, "u1", profile)
	assert.Equal(t, 100.0, p.Percent, "percent is capped")
	assert.True(t, p.GoalReached)
	assert.Equal(t, "Congratulations! You reached your hydration goal!", p.Message)
}

func TestAddWaterSaturatesTotal(t *testing.T) {
	ctx := context.Background()
	clock := testhelpers.NewClock(t, "2024-05-10")
	store := testhelpers.NewTestStore(t, clock)
	svc := NewHydrationService(store)

	storage.WriteDaily(ctx, store, "waterIntake_u1", math.MaxInt-100)

	total, err := svc.AddWater(ctx, "u1", 500)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, total)
	assert.Equal(t, math.MaxInt, svc.Intake(ctx, "u1"))

	total, err = svc.AddWater(ctx, "u1", MaxWaterAmount)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, total, "the total never wraps")
}

func TestProgressWithHugeWeight(t *testing.T) {
	ctx := context.Background()
	svc := NewHydrationService(testhelpers.NewTestStore(t, testhelpers.NewClock(t, "2024-05-10")))

	p := svc.Progress(ctx, "u1", models.UserProfile{Weight: 1e300})
	assert.Equal(t, maxWeightKg*mlPerKg, p.GoalML)
	assert.False(t, p.GoalReached)
}
