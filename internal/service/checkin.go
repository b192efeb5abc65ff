package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
)

var ErrInvalidMealKey = errors.New("meal key must be breakfast, lunch, dinner or snacks.<n>")

// Fixed meal keys. Snacks are addressed as snacks.<index>.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	snackPrefix   = "snacks."
)

// CheckInSummary is today's meal check-in state against the latest plan.
type CheckInSummary struct {
	Plan      *models.MealPlan     `json:"plan"`
	Checked   []string             `json:"checked"`
	Consumed  models.NutritionInfo `json:"consumed"`
	PlanTotal models.NutritionInfo `json:"planTotal"`
}

// PlanSource supplies the plan check-ins are counted against.
type PlanSource interface {
	LatestPlan(ctx context.Context, userID string) (*models.MealPlan, bool)
}

// CheckInService records which meals of today's plan a user has eaten. The
// set resets at the store's day boundary.
type CheckInService struct {
	store *storage.KeyValueStore
	plans PlanSource
	locks keyMutex
}

// Ensure CheckInService implements ICheckInService
var _ ICheckInService = (*CheckInService)(nil)

// NewCheckInService creates a new CheckInService instance
func NewCheckInService(store *storage.KeyValueStore, plans PlanSource) *CheckInService {
	return &CheckInService{
		store: store,
		plans: plans,
	}
}

// CheckedMeals returns today's checked meal keys in the order they were checked.
func (s *CheckInService) CheckedMeals(ctx context.Context, userID string) []string {
	checked := storage.ReadDaily(ctx, s.store, storage.UserKey(checkedMealsPrefix, userID), []string{})
	return dedupe(checked)
}

// ToggleMeal checks mealKey if it is unchecked and unchecks it otherwise.
// It returns the resulting set.
func (s *CheckInService) ToggleMeal(ctx context.Context, userID, mealKey string) ([]string, error) {
	if !ValidMealKey(mealKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMealKey, mealKey)
	}

	key := storage.UserKey(checkedMealsPrefix, userID)
	unlock := s.locks.lock(key)
	defer unlock()

	item := storage.LoadDaily(ctx, s.store, key, []string{})
	return item.Update(ctx, func(prev []string) []string {
		return toggle(dedupe(prev), mealKey)
	}), nil
}

// Summary combines today's check-ins with the user's latest saved plan.
func (s *CheckInService) Summary(ctx context.Context, userID string) CheckInSummary {
	summary := CheckInSummary{Checked: s.CheckedMeals(ctx, userID)}
	if plan, ok := s.plans.LatestPlan(ctx, userID); ok {
		summary.Plan = plan
		summary.PlanTotal = plan.TotalNutrition
		summary.Consumed = ConsumedNutrition(plan, summary.Checked)
	}
	return summary
}

// ConsumedNutrition sums the nutrition of the checked meals of plan. Keys
// that name no meal of the plan are ignored and each meal counts once.
func ConsumedNutrition(plan *models.MealPlan, checked []string) models.NutritionInfo {
	var total models.NutritionInfo
	if plan == nil {
		return total
	}
	for _, key := range dedupe(checked) {
		if meal, ok := mealByKey(plan, key); ok {
			total = total.Add(meal.Nutrition)
		}
	}
	return total
}

// ValidMealKey reports whether key names a meal slot.
func ValidMealKey(key string) bool {
	switch key {
	case MealBreakfast, MealLunch, MealDinner:
		return true
	}
	_, ok := snackIndex(key)
	return ok
}

func mealByKey(plan *models.MealPlan, key string) (*models.Meal, bool) {
	switch key {
	case MealBreakfast:
		return &plan.DailyPlan.Breakfast, true
	case MealLunch:
		return &plan.DailyPlan.Lunch, true
	case MealDinner:
		return &plan.DailyPlan.Dinner, true
	}
	i, ok := snackIndex(key)
	if !ok || i >= len(plan.DailyPlan.Snacks) {
		return nil, false
	}
	return &plan.DailyPlan.Snacks[i], true
}

// snackIndex parses snacks.<n>. Only the canonical decimal form is accepted,
// so each snack has exactly one key.
func snackIndex(key string) (int, bool) {
	rest, found := strings.CutPrefix(key, snackPrefix)
	if !found {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil || i < 0 || strconv.Itoa(i) != rest {
		return 0, false
	}
	return i, true
}

func toggle(set []string, key string) []string {
	if slices.Contains(set, key) {
		return slices.DeleteFunc(slices.Clone(set), func(k string) bool { return k == key })
	}
	return append(slices.Clone(set), key)
}

// dedupe drops repeated keys, keeping first occurrences in order.
func dedupe(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if !slices.Contains(out, k) {
			out = append(out, k)
		}
	}
	return out
}
