package models

// UserGoal is what the user wants their diet to achieve.
type UserGoal string

const (
	GoalLoseWeight     UserGoal = "lose_weight"
	GoalMaintainWeight UserGoal = "maintain_weight"
	GoalGainMuscle     UserGoal = "gain_muscle"
)

// Valid reports whether g is one of the known goals.
func (g UserGoal) Valid() bool {
	switch g {
	case GoalLoseWeight, GoalMaintainWeight, GoalGainMuscle:
		return true
	}
	return false
}

// UserProfile holds the body measurements and diet constraints used to
// personalize plans and the hydration goal. Weight is in kg, height in cm.
type UserProfile struct {
	Name         string   `json:"name"`
	Age          int      `json:"age"`
	Weight       float64  `json:"weight"`
	Height       float64  `json:"height"`
	Goal         UserGoal `json:"goal"`
	Allergies    string   `json:"allergies,omitempty"`
	Restrictions string   `json:"restrictions,omitempty"`
}

// IsComplete reports whether the profile has every measurement filled in.
func (p UserProfile) IsComplete() bool {
	return p.Age > 0 && p.Weight > 0 && p.Height > 0
}
