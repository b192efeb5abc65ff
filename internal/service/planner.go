package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
)

var ErrGenerationFailed = errors.New("the AI returned a response in an invalid format")

const maxTipLength = 250

// Generator produces text for a prompt. schema names the JSON shape the
// answer must follow, or SchemaNone for free text.
type Generator interface {
	Generate(ctx context.Context, prompt, schema string) (string, error)
}

// PlannerService turns profiles and requests into generated meal plans,
// recipes and tips.
type PlannerService struct {
	generator Generator
	library   *LibraryService
	store     *storage.KeyValueStore
	logger    *zap.Logger
	locks     keyMutex
}

// Ensure PlannerService implements IPlannerService
var _ IPlannerService = (*PlannerService)(nil)

// NewPlannerService creates a new PlannerService instance
func NewPlannerService(generator Generator, library *LibraryService, store *storage.KeyValueStore, logger *zap.Logger) *PlannerService {
	return &PlannerService{
		generator: generator,
		library:   library,
		store:     store,
		logger:    logger,
	}
}

var goalDescriptions = map[models.UserGoal]string{
	models.GoalLoseWeight:     "lose weight",
	models.GoalMaintainWeight: "maintain weight",
	models.GoalGainMuscle:     "gain muscle mass",
}

// GenerateMealPlan asks the model for a one-day plan for profile. The plan
// gets a fresh ID but is not saved.
func (s *PlannerService) GenerateMealPlan(ctx context.Context, profile models.UserProfile, request string) (*models.MealPlan, error) {
	prompt := fmt.Sprintf(`Create a one-day meal plan for a user with the following profile:
- Age: %d
- Weight: %.1f kg
- Height: %.1f cm
- Goal: %s
- Allergies: %s
- Dietary restrictions: %s

The user's specific request is: %q.

The plan must include breakfast, lunch and dinner. If it suits the goal, include 1 or 2 snacks.
For each meal give the name, a short description and the nutrition (calories, protein, carbs, fat).
Also compute the day's total macronutrients.
Provide a shopping list with every ingredient needed for the day.
Provide 3-5 substitution suggestions for key ingredients.
Give the plan a short, creative name.`,
		profile.Age, profile.Weight, profile.Height, describeGoal(profile.Goal),
		orNone(profile.Allergies), orNone(profile.Restrictions), orDefault(request, "a balanced day"))

	var plan models.MealPlan
	if err := s.generateJSON(ctx, prompt, SchemaMealPlan, &plan); err != nil {
		return nil, err
	}
	if plan.DailyPlan.Breakfast.Name == "" || plan.DailyPlan.Lunch.Name == "" || plan.DailyPlan.Dinner.Name == "" {
		return nil, fmt.Errorf("%w: plan is missing meals", ErrGenerationFailed)
	}
	plan.ID = NewID()
	return &plan, nil
}

// GenerateRecipe asks the model for a recipe matching request.
func (s *PlannerService) GenerateRecipe(ctx context.Context, profile models.UserProfile, request string) (*models.Recipe, error) {
	prompt := fmt.Sprintf(`Create a detailed recipe based on the following request: %q.
The recipe must include a name, a short appetizing description, preparation and cooking time,
the number of servings, the list of ingredients, step-by-step instructions and the
nutrition per serving (calories, protein, carbs, fat).
Avoid these allergens: %s. Respect these dietary restrictions: %s.`,
		request, orNone(profile.Allergies), orNone(profile.Restrictions))

	var recipe models.Recipe
	if err := s.generateJSON(ctx, prompt, SchemaRecipe, &recipe); err != nil {
		return nil, err
	}
	if recipe.Name == "" || len(recipe.Ingredients) == 0 {
		return nil, fmt.Errorf("%w: recipe is missing a name or ingredients", ErrGenerationFailed)
	}
	recipe.ID = NewID()
	return &recipe, nil
}

// ReplaceMeal generates a new meal for mealKey of a saved plan, stores the
// updated plan and returns it. The plan total is recomputed from its meals.
func (s *PlannerService) ReplaceMeal(ctx context.Context, userID string, profile models.UserProfile, planID, mealKey, request string) (*models.MealPlan, error) {
	if !ValidMealKey(mealKey) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMealKey, mealKey)
	}
	plan, err := s.library.GetPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	if _, ok := mealByKey(plan, mealKey); !ok {
		return nil, fmt.Errorf("%w: plan has no meal %q", ErrInvalidMealKey, mealKey)
	}

	prompt := fmt.Sprintf(`I need to replace one meal in an existing meal plan.

User profile:
- Goal: %s
- Allergies: %s
- Dietary restrictions: %s

Current plan, for nutritional context only; do not recreate it:
- Total daily calories: %.0f
- Total daily protein: %.0f

Meal to replace: %s.

User request for the new meal: %q

Generate one new meal (name, description and nutrition) that is nutritionally similar to a typical meal of this kind, considering the user's goal.`,
		describeGoal(profile.Goal), orNone(profile.Allergies), orNone(profile.Restrictions),
		plan.TotalNutrition.Calories, plan.TotalNutrition.Protein, mealKey,
		orDefault(request, "Suggest an alternative for "+mealKey+" that fits my goal."))

	var meal models.Meal
	if err := s.generateJSON(ctx, prompt, SchemaMeal, &meal); err != nil {
		return nil, err
	}
	if meal.Name == "" {
		return nil, fmt.Errorf("%w: meal has no name", ErrGenerationFailed)
	}

	slot, _ := mealByKey(plan, mealKey)
	*slot = meal
	plan.TotalNutrition = planTotal(plan.DailyPlan)
	return s.library.SavePlan(ctx, userID, *plan)
}

// DailyTip returns today's tip for the user, generating it on the first call
// of the day.
func (s *PlannerService) DailyTip(ctx context.Context, userID string, profile models.UserProfile) (string, error) {
	key := storage.UserKey(dailyTipPrefix, userID)
	unlock := s.locks.lock(key)
	defer unlock()

	tip := storage.LoadDaily(ctx, s.store, key, "")
	if cached := tip.Value(); cached != "" {
		return cached, nil
	}

	prompt := fmt.Sprintf(`Write a short, motivating and actionable health tip (at most %d characters) for a user whose goal is to %s.
Answer with the tip text only, without any prefix such as "Tip of the day:".
You may use bold with asterisks.`, maxTipLength, describeGoal(profile.Goal))

	text, err := s.generator.Generate(ctx, prompt, SchemaNone)
	if err != nil {
		return "", fmt.Errorf("failed to generate tip: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrGenerationFailed
	}

	tip.Set(ctx, text)
	return text, nil
}

func (s *PlannerService) generateJSON(ctx context.Context, prompt, schema string, out any) error {
	text, err := s.generator.Generate(ctx, prompt, schema)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", schema, err)
	}
	if err := json.Unmarshal([]byte(StripCodeFence(text)), out); err != nil {
		s.logger.Warn("failed to parse model response",
			zap.String("schema", schema),
			zap.String("response", text),
			zap.Error(err))
		return fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return nil
}

// StripCodeFence removes a surrounding markdown code block such as
// ```json ... ``` from model output.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func planTotal(day models.DailyPlan) models.NutritionInfo {
	total := day.Breakfast.Nutrition.Add(day.Lunch.Nutrition).Add(day.Dinner.Nutrition)
	for _, snack := range day.Snacks {
		total = total.Add(snack.Nutrition)
	}
	return total
}

func describeGoal(g models.UserGoal) string {
	if d, ok := goalDescriptions[g]; ok {
		return d
	}
	return goalDescriptions[models.GoalMaintainWeight]
}

func orNone(s string) string {
	return orDefault(s, "none")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
