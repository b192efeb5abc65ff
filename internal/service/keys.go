package service

import (
	"hash/maphash"
	"sync"
)

// Storage keys. Per-user keys are built with storage.UserKey(prefix, userID).
const (
	waterIntakePrefix  = "waterIntake"
	checkedMealsPrefix = "checkedMeals"
	dailyTipPrefix     = "dailyTip"
	coachChatPrefix    = "coachChat"
	usersKey           = "nutriai_users"
	sessionsPrefix     = "nutriai_sessions"
	profilePrefix      = "userProfile"
	savedPlansPrefix   = "savedPlans"
	savedRecipesPrefix = "savedRecipes"
	themePrefix        = "theme"
)

const lockStripes = 64

var lockSeed = maphash.MakeSeed()

// keyMutex serializes read-modify-write cycles on one storage key within
// this process. Keys hash onto a fixed set of stripes, so unrelated keys may
// share a mutex. Writers in other processes still race; the last write wins.
type keyMutex struct {
	stripes [lockStripes]sync.Mutex
}

func (k *keyMutex) lock(key string) func() {
	mu := &k.stripes[maphash.String(lockSeed, key)%lockStripes]
	mu.Lock()
	return mu.Unlock
}
