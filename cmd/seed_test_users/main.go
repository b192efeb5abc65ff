package main

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/config"
	"github.com/pageza/nutriai/backend/internal/app"
	"github.com/pageza/nutriai/backend/internal/models"
	"github.com/pageza/nutriai/backend/internal/service"
)

const testPassword = "testpassword123"

type testUser struct {
	name    string
	email   string
	profile models.UserProfile
	// withPlan saves a sample plan so check-ins work right away.
	withPlan bool
}

var testUsers = []testUser{
	{
		name:  "Test Complete",
		email: "complete@example.com",
		profile: models.UserProfile{
			Age: 34, Weight: 72, Height: 178,
			Goal:         models.GoalLoseWeight,
			Restrictions: "vegetarian",
		},
		withPlan: true,
	},
	{
		name:  "Test Athlete",
		email: "athlete@example.com",
		profile: models.UserProfile{
			Age: 27, Weight: 85, Height: 185,
			Goal:      models.GoalGainMuscle,
			Allergies: "peanuts",
		},
	},
	{
		// Left without measurements to exercise onboarding.
		name:  "Test Onboarding",
		email: "onboarding@example.com",
	},
}

func main() {
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	if cfg.StorageBackend == config.BackendMemory {
		log.Fatal("seeding the memory backend has no effect, set STORAGE_BACKEND")
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	for _, u := range testUsers {
		if err := seedUser(ctx, a, u); err != nil {
			log.Error("failed to seed user", zap.String("email", u.email), zap.Error(err))
			continue
		}
		log.Info("seeded user", zap.String("email", u.email), zap.Bool("complete", u.profile.IsComplete()))
	}

	log.Info("test users ready", zap.Int("count", len(testUsers)), zap.String("password", testPassword))
}

func seedUser(ctx context.Context, a *app.App, u testUser) error {
	account, _, err := a.Accounts.Register(ctx, u.name, u.email, testPassword)
	if errors.Is(err, service.ErrEmailTaken) {
		account, _, err = a.Accounts.Login(ctx, u.email, testPassword)
	}
	if err != nil {
		return err
	}
	userID := account.ID.String()

	profile := u.profile
	profile.Name = u.name
	if profile.Goal == "" {
		profile.Goal = models.GoalMaintainWeight
	}
	if _, err := a.Profiles.SaveProfile(ctx, userID, profile); err != nil {
		return err
	}

	if u.withPlan {
		if _, ok := a.Library.LatestPlan(ctx, userID); !ok {
			if _, err := a.Library.SavePlan(ctx, userID, samplePlan()); err != nil {
				return err
			}
		}
	}
	return nil
}

func samplePlan() models.MealPlan {
	day := models.DailyPlan{
		Breakfast: models.Meal{
			Name:        "Overnight oats",
			Description: "Rolled oats soaked in milk with berries and chia",
			Nutrition:   models.NutritionInfo{Calories: 380, Protein: 15, Carbs: 58, Fat: 10},
		},
		Lunch: models.Meal{
			Name:        "Lentil salad",
			Description: "Green lentils, cucumber, tomato and feta with lemon dressing",
			Nutrition:   models.NutritionInfo{Calories: 520, Protein: 26, Carbs: 62, Fat: 18},
		},
		Dinner: models.Meal{
			Name:        "Tofu stir fry",
			Description: "Firm tofu with broccoli, peppers and brown rice",
			Nutrition:   models.NutritionInfo{Calories: 610, Protein: 32, Carbs: 70, Fat: 20},
		},
		Snacks: []models.Meal{{
			Name:      "Greek yogurt",
			Nutrition: models.NutritionInfo{Calories: 150, Protein: 15, Carbs: 8, Fat: 5},
		}},
	}
	total := day.Breakfast.Nutrition.Add(day.Lunch.Nutrition).Add(day.Dinner.Nutrition)
	for _, s := range day.Snacks {
		total = total.Add(s.Nutrition)
	}
	return models.MealPlan{
		Name:           "Sample vegetarian day",
		DailyPlan:      day,
		TotalNutrition: total,
		ShoppingList:   []string{"rolled oats", "berries", "lentils", "feta", "tofu", "broccoli", "brown rice", "greek yogurt"},
	}
}
