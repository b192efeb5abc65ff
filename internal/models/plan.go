package models

// NutritionInfo is a macro breakdown. Calories in kcal, the rest in grams.
type NutritionInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the field-wise sum of n and o.
func (n NutritionInfo) Add(o NutritionInfo) NutritionInfo {
	return NutritionInfo{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

type Meal struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Nutrition   NutritionInfo `json:"nutrition"`
}

type DailyPlan struct {
	Breakfast Meal   `json:"breakfast"`
	Lunch     Meal   `json:"lunch"`
	Dinner    Meal   `json:"dinner"`
	Snacks    []Meal `json:"snacks,omitempty"`
}

type Substitution struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
}

// MealPlan is a generated one-day plan. IDs are assigned on generation and
// sort in creation order.
type MealPlan struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	DailyPlan      DailyPlan      `json:"dailyPlan"`
	TotalNutrition NutritionInfo  `json:"totalNutrition"`
	Substitutions  []Substitution `json:"substitutions"`
	ShoppingList   []string       `json:"shoppingList"`
}

type Recipe struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	PrepTime     string        `json:"prepTime"`
	CookTime     string        `json:"cookTime"`
	Servings     int           `json:"servings"`
	Ingredients  []string      `json:"ingredients"`
	Instructions []string      `json:"instructions"`
	Nutrition    NutritionInfo `json:"nutrition"`
}
