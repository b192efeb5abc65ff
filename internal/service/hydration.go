package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
)

var ErrInvalidAmount = errors.New("amount must be between 1 and 10000 milliliters")

const (
	// DefaultWaterGoal applies when the profile has no weight.
	DefaultWaterGoal = 2000
	// mlPerKg is the daily intake recommended per kilogram of body weight.
	mlPerKg = 35
	// MaxWaterAmount caps a single logged portion.
	MaxWaterAmount = 10000
)

// QuickAmounts are the one-tap portions offered to clients: a glass, a small
// bottle and a medium bottle.
var QuickAmounts = []int{250, 500, 750}

// HydrationProgress describes today's water intake against the goal.
type HydrationProgress struct {
	IntakeML     int     `json:"intakeMl"`
	GoalML       int     `json:"goalMl"`
	Percent      float64 `json:"percent"`
	GoalReached  bool    `json:"goalReached"`
	Message      string  `json:"message"`
	QuickAmounts []int   `json:"quickAmounts"`
}

// HydrationService tracks how much water each user drank today. The counter
// resets at the store's day boundary.
type HydrationService struct {
	store *storage.KeyValueStore
	locks keyMutex
}

// Ensure HydrationService implements IHydrationService
var _ IHydrationService = (*HydrationService)(nil)

// NewHydrationService creates a new HydrationService instance
func NewHydrationService(store *storage.KeyValueStore) *HydrationService {
	return &HydrationService{store: store}
}

// Intake returns today's total in milliliters.
func (s *HydrationService) Intake(ctx context.Context, userID string) int {
	return nonNegative(storage.ReadDaily(ctx, s.store, storage.UserKey(waterIntakePrefix, userID), 0))
}

// AddWater adds ml to today's total and returns the new total. The total
// saturates at math.MaxInt.
func (s *HydrationService) AddWater(ctx context.Context, userID string, ml int) (int, error) {
	if ml <= 0 || ml > MaxWaterAmount {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidAmount, ml)
	}

	key := storage.UserKey(waterIntakePrefix, userID)
	unlock := s.locks.lock(key)
	defer unlock()

	item := storage.LoadDaily(ctx, s.store, key, 0)
	total := item.Update(ctx, func(current int) int {
		current = nonNegative(current)
		if current > math.MaxInt-ml {
			return math.MaxInt
		}
		return current + ml
	})
	return total, nil
}

// Progress reports today's intake against the goal derived from profile.
func (s *HydrationService) Progress(ctx context.Context, userID string, profile models.UserProfile) HydrationProgress {
	intake := s.Intake(ctx, userID)
	goal := DailyGoal(profile)

	percent := 0.0
	if goal > 0 {
		percent = math.Min(float64(intake)/float64(goal)*100, 100)
	}

	return HydrationProgress{
		IntakeML:     intake,
		GoalML:       goal,
		Percent:      percent,
		GoalReached:  intake >= goal,
		Message:      hydrationMessage(intake >= goal, percent),
		QuickAmounts: QuickAmounts,
	}
}

// DailyGoal returns the recommended intake in milliliters: 35 ml per kg of
// body weight, or DefaultWaterGoal when the weight is unknown.
func DailyGoal(profile models.UserProfile) int {
	if profile.Weight <= 0 {
		return DefaultWaterGoal
	}
	weight := profile.Weight
	if !(weight <= maxWeightKg) {
		weight = maxWeightKg
	}
	return int(math.Round(weight * mlPerKg))
}

func hydrationMessage(reached bool, percent float64) string {
	switch {
	case reached:
		return "Congratulations! You reached your hydration goal!"
	case percent > 75:
		return "You're almost there, keep it up!"
	case percent > 50:
		return "Great! You're past the halfway mark."
	case percent > 25:
		return "Good start! Keep hydrating."
	default:
		return "One sip at a time. Start logging your water intake!"
	}
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
