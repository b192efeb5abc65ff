package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/pageza/nutriai/backend/config"
	"github.com/pageza/nutriai/backend/internal/app"
	"github.com/pageza/nutriai/backend/internal/models"
)

var starterRecipes = []models.Recipe{
	{
		Name:         "Chickpea curry",
		Description:  "A mild coconut curry with chickpeas and spinach",
		PrepTime:     "10 minutes",
		CookTime:     "25 minutes",
		Servings:     4,
		Ingredients:  []string{"2 cans chickpeas", "1 can coconut milk", "1 onion", "2 cloves garlic", "2 tbsp curry paste", "200g spinach"},
		Instructions: []string{"Soften the onion and garlic.", "Stir in the curry paste.", "Add chickpeas and coconut milk and simmer 20 minutes.", "Wilt in the spinach."},
		Nutrition:    models.NutritionInfo{Calories: 410, Protein: 14, Carbs: 38, Fat: 22},
	},
	{
		Name:         "Salmon with quinoa",
		Description:  "Oven baked salmon over lemony quinoa",
		PrepTime:     "10 minutes",
		CookTime:     "20 minutes",
		Servings:     2,
		Ingredients:  []string{"2 salmon fillets", "150g quinoa", "1 lemon", "1 tbsp olive oil", "parsley"},
		Instructions: []string{"Cook the quinoa.", "Bake the salmon at 200C for 12 minutes.", "Dress the quinoa with lemon, oil and parsley and serve under the salmon."},
		Nutrition:    models.NutritionInfo{Calories: 560, Protein: 38, Carbs: 45, Fat: 24},
	},
	{
		Name:         "Berry protein smoothie",
		Description:  "Quick breakfast smoothie",
		PrepTime:     "5 minutes",
		CookTime:     "0 minutes",
		Servings:     1,
		Ingredients:  []string{"150g frozen berries", "1 banana", "200ml milk", "1 scoop whey protein"},
		Instructions: []string{"Blend everything until smooth."},
		Nutrition:    models.NutritionInfo{Calories: 340, Protein: 30, Carbs: 48, Fat: 4},
	},
}

func main() {
	email := flag.String("email", "complete@example.com", "account to seed recipes for")
	password := flag.String("password", "testpassword123", "password of the account")
	generate := flag.String("generate", "", "ask the model for a recipe matching this request instead of using the starter set")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	account, _, err := a.Accounts.Login(ctx, *email, *password)
	if err != nil {
		log.Fatal("failed to sign in, run seed_test_users first", zap.String("email", *email), zap.Error(err))
	}
	userID := account.ID.String()

	recipes := starterRecipes
	if *generate != "" {
		if a.Planner == nil {
			log.Fatal("GEMINI_API_KEY is required with -generate")
		}
		profile := a.Profiles.GetProfile(ctx, userID, account.Name)
		recipe, err := a.Planner.GenerateRecipe(ctx, profile, *generate)
		if err != nil {
			log.Fatal("recipe generation failed", zap.Error(err))
		}
		recipes = []models.Recipe{*recipe}
	}

	existing := make(map[string]bool)
	for _, r := range a.Library.ListRecipes(ctx, userID) {
		existing[r.Name] = true
	}

	saved := 0
	for _, r := range recipes {
		if existing[r.Name] {
			log.Info("recipe already saved, skipping", zap.String("name", r.Name))
			continue
		}
		if _, err := a.Library.SaveRecipe(ctx, userID, r); err != nil {
			log.Error("failed to save recipe", zap.String("name", r.Name), zap.Error(err))
			continue
		}
		saved++
	}
	log.Info("recipes seeded", zap.String("email", *email), zap.Int("saved", saved))
}
