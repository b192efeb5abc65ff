package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/storage"
)

var (
	ErrPlanNotFound   = errors.New("plan not found")
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidName    = errors.New("name must not be empty")
	ErrInvalidPlan    = errors.New("plan is missing required meals")
	ErrInvalidRecipe  = errors.New("recipe is missing a name or ingredients")
)

// LibraryService keeps the meal plans and recipes a user chose to save.
// Lists are stored newest first.
type LibraryService struct {
	plans   savedList[models.MealPlan]
	recipes savedList[models.Recipe]
}

// Ensure LibraryService implements ILibraryService and PlanSource
var (
	_ ILibraryService = (*LibraryService)(nil)
	_ PlanSource      = (*LibraryService)(nil)
)

// NewLibraryService creates a new LibraryService instance
func NewLibraryService(store *storage.KeyValueStore) *LibraryService {
	return &LibraryService{
		plans: savedList[models.MealPlan]{
			store:    store,
			prefix:   savedPlansPrefix,
			notFound: ErrPlanNotFound,
			id:       func(p *models.MealPlan) *string { return &p.ID },
			name:     func(p *models.MealPlan) *string { return &p.Name },
		},
		recipes: savedList[models.Recipe]{
			store:    store,
			prefix:   savedRecipesPrefix,
			notFound: ErrRecipeNotFound,
			id:       func(r *models.Recipe) *string { return &r.ID },
			name:     func(r *models.Recipe) *string { return &r.Name },
		},
	}
}

// NewID returns a time-ordered identifier for a plan or recipe.
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

func (s *LibraryService) ListPlans(ctx context.Context, userID string) []models.MealPlan {
	return s.plans.list(ctx, userID)
}

func (s *LibraryService) GetPlan(ctx context.Context, userID, planID string) (*models.MealPlan, error) {
	return s.plans.get(ctx, userID, planID)
}

// SavePlan stores plan, replacing any saved plan with the same ID. A plan
// without an ID gets one.
func (s *LibraryService) SavePlan(ctx context.Context, userID string, plan models.MealPlan) (*models.MealPlan, error) {
	if plan.DailyPlan.Breakfast.Name == "" || plan.DailyPlan.Lunch.Name == "" || plan.DailyPlan.Dinner.Name == "" {
		return nil, ErrInvalidPlan
	}
	if strings.TrimSpace(plan.Name) == "" {
		plan.Name = "Meal plan"
	}
	return s.plans.save(ctx, userID, plan)
}

func (s *LibraryService) RenamePlan(ctx context.Context, userID, planID, name string) (*models.MealPlan, error) {
	return s.plans.rename(ctx, userID, planID, name)
}

func (s *LibraryService) DeletePlan(ctx context.Context, userID, planID string) error {
	return s.plans.delete(ctx, userID, planID)
}

// LatestPlan returns the most recently created saved plan.
func (s *LibraryService) LatestPlan(ctx context.Context, userID string) (*models.MealPlan, bool) {
	plans := s.plans.list(ctx, userID)
	if len(plans) == 0 {
		return nil, false
	}
	latest := slices.MaxFunc(plans, func(a, b models.MealPlan) int {
		return strings.Compare(a.ID, b.ID)
	})
	return &latest, true
}

func (s *LibraryService) ListRecipes(ctx context.Context, userID string) []models.Recipe {
	return s.recipes.list(ctx, userID)
}

func (s *LibraryService) GetRecipe(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	return s.recipes.get(ctx, userID, recipeID)
}

func (s *LibraryService) SaveRecipe(ctx context.Context, userID string, recipe models.Recipe) (*models.Recipe, error) {
	if strings.TrimSpace(recipe.Name) == "" || len(recipe.Ingredients) == 0 {
		return nil, ErrInvalidRecipe
	}
	return s.recipes.save(ctx, userID, recipe)
}

func (s *LibraryService) RenameRecipe(ctx context.Context, userID, recipeID, name string) (*models.Recipe, error) {
	return s.recipes.rename(ctx, userID, recipeID, name)
}

func (s *LibraryService) DeleteRecipe(ctx context.Context, userID, recipeID string) error {
	return s.recipes.delete(ctx, userID, recipeID)
}

// savedList is a per-user list of T persisted as one JSON array.
type savedList[T any] struct {
	store    *storage.KeyValueStore
	prefix   string
	notFound error
	id       func(*T) *string
	name     func(*T) *string
	locks    keyMutex
}

func (l *savedList[T]) key(userID string) string {
	return storage.UserKey(l.prefix, userID)
}

func (l *savedList[T]) list(ctx context.Context, userID string) []T {
	return storage.Get(ctx, l.store, l.key(userID), []T{})
}

func (l *savedList[T]) index(items []T, id string) int {
	return slices.IndexFunc(items, func(v T) bool { return *l.id(&v) == id })
}

func (l *savedList[T]) get(ctx context.Context, userID, id string) (*T, error) {
	items := l.list(ctx, userID)
	i := l.index(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", l.notFound, id)
	}
	return &items[i], nil
}

func (l *savedList[T]) save(ctx context.Context, userID string, v T) (*T, error) {
	if *l.id(&v) == "" {
		*l.id(&v) = NewID()
	}

	key := l.key(userID)
	unlock := l.locks.lock(key)
	defer unlock()

	items := storage.Load(ctx, l.store, key, []T{})
	items.Update(ctx, func(prev []T) []T {
		next := slices.DeleteFunc(slices.Clone(prev), func(p T) bool { return *l.id(&p) == *l.id(&v) })
		return append([]T{v}, next...)
	})
	return &v, nil
}

func (l *savedList[T]) rename(ctx context.Context, userID, id, name string) (*T, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	key := l.key(userID)
	unlock := l.locks.lock(key)
	defer unlock()

	items := storage.Load(ctx, l.store, key, []T{})
	current := items.Value()
	i := l.index(current, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", l.notFound, id)
	}

	next := slices.Clone(current)
	*l.name(&next[i]) = name
	items.Set(ctx, next)
	return &next[i], nil
}

func (l *savedList[T]) delete(ctx context.Context, userID, id string) error {
	key := l.key(userID)
	unlock := l.locks.lock(key)
	defer unlock()

	items := storage.Load(ctx, l.store, key, []T{})
	current := items.Value()
	if l.index(current, id) < 0 {
		return fmt.Errorf("%w: %s", l.notFound, id)
	}
	items.Set(ctx, slices.DeleteFunc(slices.Clone(current), func(v T) bool { return *l.id(&v) == id }))
	return nil
}
