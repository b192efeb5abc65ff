package service

import (
	"context"
	"testing"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
	"github.com/pageza/nutriai/backend/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(id string) models.MealPlan {
	return models.MealPlan{
		ID:   id,
		Name: "Plan " + id,
		DailyPlan: models.DailyPlan{
			Breakfast: models.Meal{Name: "Oats", Nutrition: models.NutritionInfo{Calories: 300, Protein: 10, Carbs: 50, Fat: 5}},
			Lunch:     models.Meal{Name: "Chicken salad", Nutrition: models.NutritionInfo{Calories: 500, Protein: 40, Carbs: 20, Fat: 20}},
			Dinner:    models.Meal{Name: "Salmon", Nutrition: models.NutritionInfo{Calories: 600, Protein: 45, Carbs: 30, Fat: 25}},
			Snacks: []models.Meal{
				{Name: "Apple", Nutrition: models.NutritionInfo{Calories: 95, Carbs: 25}},
			},
		},
		TotalNutrition: models.NutritionInfo{Calories: 1495, Protein: 95, Carbs: 125, Fat: 50},
	}
}

func newCheckInEnv(t *testing.T) (*CheckInService, *LibraryService, *testhelpers.Clock) {
	clock := testhelpers.NewClock(t, "2024-05-10")
	store := testhelpers.NewTestStore(t, clock)
	library := NewLibraryService(store)
	return NewCheckInService(store, library), library, clock
}

func TestToggleMeal(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCheckInEnv(t)

	checked, err := svc.ToggleMeal(ctx, "u1", MealBreakfast)
	require.NoError(t, err)
	assert.Equal(t, []string{"breakfast"}, checked)

	checked, err = svc.ToggleMeal(ctx, "u1", "snacks.0")
	require.NoError(t, err)
	assert.Equal(t, []string{"breakfast", "snacks.0"}, checked)

	checked, err = svc.ToggleMeal(ctx, "u1", MealBreakfast)
	require.NoError(t, err)
	assert.Equal(t, []string{"snacks.0"}, checked)
	assert.Equal(t, []string{"snacks.0"}, svc.CheckedMeals(ctx, "u1"))
}

func TestToggleMealTwiceRestoresSet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCheckInEnv(t)

	_, err := svc.ToggleMeal(ctx, "u1", MealLunch)
	require.NoError(t, err)
	before := svc.CheckedMeals(ctx, "u1")

	for i := 0; i < 2; i++ {
		_, err = svc.ToggleMeal(ctx, "u1", MealDinner)
		require.NoError(t, err)
	}
	assert.Equal(t, before, svc.CheckedMeals(ctx, "u1"))
}

func TestToggleMealInvalidKey(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newCheckInEnv(t)

	for _, key := range []string{"", "brunch", "snacks.", "snacks.-1", "snacks.x", "Breakfast", "snacks.00", "snacks.01", "snacks.+0", "snacks. 0"} {
		_, err := svc.ToggleMeal(ctx, "u1", key)
		assert.ErrorIs(t, err, ErrInvalidMealKey, key)
	}
	assert.Empty(t, svc.CheckedMeals(ctx, "u1"))
}

func TestCheckedMealsResetNextDay(t *testing.T) {
	ctx := context.Background()
	svc, _, clock := newCheckInEnv(t)

	_, err := svc.ToggleMeal(ctx, "u1", MealBreakfast)
	require.NoError(t, err)

	clock.AddDays(1)
	assert.Empty(t, svc.CheckedMeals(ctx, "u1"))

	checked, err := svc.ToggleMeal(ctx, "u1", MealLunch)
	require.NoError(t, err)
	assert.Equal(t, []string{"lunch"}, checked)
}

func TestCheckedMealsDropsDuplicates(t *testing.T) {
	ctx := context.Background()
	clock := testhelpers.NewClock(t, "2024-05-10")
	store := testhelpers.NewTestStore(t, clock)
	svc := NewCheckInService(store, NewLibraryService(store))

	storage.WriteDaily(ctx, store, "checkedMeals_u1", []string{"lunch", "lunch", "dinner"})
	assert.Equal(t, []string{"lunch", "dinner"}, svc.CheckedMeals(ctx, "u1"))

	checked, err := svc.ToggleMeal(ctx, "u1", MealLunch)
	require.NoError(t, err)
	assert.Equal(t, []string{"dinner"}, checked)
}

func TestSnackHasSingleKey(t *testing.T) {
	ctx := context.Background()
	svc, library, _ := newCheckInEnv(t)
	_, err := library.SavePlan(ctx, "u1", samplePlan("p1"))
	require.NoError(t, err)

	_, err = svc.ToggleMeal(ctx, "u1", "snacks.0")
	require.NoError(t, err)
	_, err = svc.ToggleMeal(ctx, "u1", "snacks.00")
	assert.ErrorIs(t, err, ErrInvalidMealKey)

	summary := svc.Summary(ctx, "u1")
	assert.Equal(t, []string{"snacks.0"}, summary.Checked)
	assert.Equal(t, 95.0, summary.Consumed.Calories)
}

func TestConsumedNutritionIgnoresAliasedSnackKeys(t *testing.T) {
	plan := samplePlan("p1")

	got := ConsumedNutrition(&plan, []string{"snacks.0", "snacks.00", "snacks.+0", "snacks.0"})
	assert.Equal(t, models.NutritionInfo{Calories: 95, Carbs: 25}, got)
}

func TestConsumedNutrition(t *testing.T) {
	plan := samplePlan("p1")

	got := ConsumedNutrition(&plan, []string{"breakfast", "snacks.0", "snacks.5"})
	assert.Equal(t, models.NutritionInfo{Calories: 395, Protein: 10, Carbs: 75, Fat: 5}, got)

	assert.Equal(t, models.NutritionInfo{}, ConsumedNutrition(nil, []string{"breakfast"}))
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc, library, _ := newCheckInEnv(t)

	summary := svc.Summary(ctx, "u1")
	assert.Nil(t, summary.Plan)
	assert.Empty(t, summary.Checked)

	_, err := library.SavePlan(ctx, "u1", samplePlan("01"))
	require.NoError(t, err)
	_, err = library.SavePlan(ctx, "u1", samplePlan("02"))
	require.NoError(t, err)
	_, err = svc.ToggleMeal(ctx, "u1", MealDinner)
	require.NoError(t, err)

	summary = svc.Summary(ctx, "u1")
	require.NotNil(t, summary.Plan)
	assert.Equal(t, "02", summary.Plan.ID)
	assert.Equal(t, 600.0, summary.Consumed.Calories)
	assert.Equal(t, 1495.0, summary.PlanTotal.Calories)
}
