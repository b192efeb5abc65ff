package storage

import (
	"context"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable wall clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock(date string) *fakeClock {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		panic(err)
	}
	return &fakeClock{now: t.Add(12 * time.Hour)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AddDays(n int) { c.now = c.now.AddDate(0, 0, n) }

func newDailyStore(clock *fakeClock) (*KeyValueStore, *MemoryBackend) {
	backend := NewMemoryBackend()
	return New(backend, WithNow(clock.Now)), backend
}

func TestReadDailySameDay(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	backend := NewMemoryBackend()
	require.NoError(t, backend.SetItem(ctx, "waterIntake_u1", `{"date":"2024-06-01","value":500}`))
	store := New(backend, WithNow(clock.Now))

	assert.Equal(t, 500, ReadDaily(ctx, store, "waterIntake_u1", 0))
}

func TestReadDailyNextDayReturnsDefault(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-02")
	backend := NewMemoryBackend()
	raw := `{"date":"2024-06-01","value":500}`
	require.NoError(t, backend.SetItem(ctx, "waterIntake_u1", raw))
	store := New(backend, WithNow(clock.Now))

	assert.Equal(t, 0, ReadDaily(ctx, store, "waterIntake_u1", 0))

	stale, err := backend.GetItem(ctx, "waterIntake_u1")
	require.NoError(t, err)
	assert.Equal(t, raw, stale, "the stale envelope stays until the next write")
}

func TestReadDailyAfterAnyNumberOfDays(t *testing.T) {
	ctx := context.Background()

	for _, days := range []int{1, 2, 7, 31, 365} {
		clock := newFakeClock("2024-06-01")
		store, _ := newDailyStore(clock)
		WriteDaily(ctx, store, "waterIntake_u1", 750)
		require.Equal(t, 750, ReadDaily(ctx, store, "waterIntake_u1", 0))

		clock.AddDays(days)
		assert.Equal(t, 0, ReadDaily(ctx, store, "waterIntake_u1", 0), "after %d days", days)
	}
}

func TestWriteDailyStampsToday(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	store, backend := newDailyStore(clock)

	WriteDaily(ctx, store, "checkedMeals_u1", []string{"lunch"})

	raw, err := backend.GetItem(ctx, "checkedMeals_u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-01","value":["lunch"]}`, raw)
}

func TestWriteDailyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	once, _ := newDailyStore(clock)
	twice, _ := newDailyStore(clock)

	WriteDaily(ctx, once, "waterIntake_u1", 250)
	WriteDaily(ctx, twice, "waterIntake_u1", 250)
	WriteDaily(ctx, twice, "waterIntake_u1", 250)

	assert.Equal(t, ReadDaily(ctx, once, "waterIntake_u1", 0), ReadDaily(ctx, twice, "waterIntake_u1", 0))
}

func TestReadDailyRejectsMalformedEnvelopes(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"date":`},
		{"bare number", `500`},
		{"missing date", `{"value":500}`},
		{"date not a string", `{"date":20240601,"value":500}`},
		{"malformed date", `{"date":"06/01/2024","value":500}`},
		{"missing value", `{"date":"2024-06-01"}`},
		{"null value", `{"date":"2024-06-01","value":null}`},
		{"wrong value type", `{"date":"2024-06-01","value":"five hundred"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock("2024-06-01")
			backend := NewMemoryBackend()
			require.NoError(t, backend.SetItem(ctx, "waterIntake_u1", tt.raw))
			store := New(backend, WithNow(clock.Now))

			assert.NotPanics(t, func() {
				assert.Equal(t, 0, ReadDaily(ctx, store, "waterIntake_u1", 0))
			})
		})
	}
}

func TestDailyKeysAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	store, _ := newDailyStore(clock)

	u1 := LoadDaily(ctx, store, UserKey("waterIntake", "u1"), 0)
	u2 := LoadDaily(ctx, store, UserKey("waterIntake", "u2"), 0)
	u1.Update(ctx, func(v int) int { return v + 500 })
	u2.Update(ctx, func(v int) int { return v + 250 })

	assert.Equal(t, 500, ReadDaily(ctx, store, "waterIntake_u1", 0))
	assert.Equal(t, 250, ReadDaily(ctx, store, "waterIntake_u2", 0))
}

func TestDailyItemAccumulatesInAnyOrder(t *testing.T) {
	ctx := context.Background()
	amounts := []int{250, 500, 750, 100, 330}
	want := 0
	for _, a := range amounts {
		want += a
	}

	orders := [][]int{amounts, slices.Clone(amounts)}
	slices.Reverse(orders[1])

	for _, order := range orders {
		clock := newFakeClock("2024-06-01")
		store, _ := newDailyStore(clock)
		for _, a := range order {
			item := LoadDaily(ctx, store, "waterIntake_u1", 0)
			item.Update(ctx, func(v int) int { return v + a })
		}
		assert.Equal(t, want, ReadDaily(ctx, store, "waterIntake_u1", 0))
	}
}

func TestDailyItemToggleTwiceRestoresSet(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	store, _ := newDailyStore(clock)

	toggle := func(key string) func([]string) []string {
		return func(prev []string) []string {
			if slices.Contains(prev, key) {
				return slices.DeleteFunc(slices.Clone(prev), func(k string) bool { return k == key })
			}
			return append(slices.Clone(prev), key)
		}
	}

	item := LoadDaily(ctx, store, "checkedMeals_u1", []string{})
	item.Update(ctx, toggle("lunch"))
	before := item.Value()

	item.Update(ctx, toggle("dinner"))
	item.Update(ctx, toggle("dinner"))

	assert.Equal(t, before, item.Value())
	assert.Equal(t, []string{"lunch"}, ReadDaily(ctx, store, "checkedMeals_u1", []string{}))
}

func TestDailyItemAddThenRemoveMeal(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	store, _ := newDailyStore(clock)

	item := LoadDaily(ctx, store, "checkedMeals_u1", []string{})
	item.Update(ctx, func(prev []string) []string { return append(slices.Clone(prev), "breakfast") })
	item.Update(ctx, func(prev []string) []string {
		return slices.DeleteFunc(slices.Clone(prev), func(k string) bool { return k == "breakfast" })
	})

	assert.Empty(t, ReadDaily(ctx, store, "checkedMeals_u1", []string{"sentinel"}))
}

func TestDailyItemResetsWhenHeldPastMidnight(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock("2024-06-01")
	store, backend := newDailyStore(clock)

	item := LoadDaily(ctx, store, "waterIntake_u1", 0)
	item.Update(ctx, func(v int) int { return v + 1500 })
	require.Equal(t, 1500, item.Value())

	clock.AddDays(1)
	assert.Equal(t, 0, item.Value())

	got := item.Update(ctx, func(v int) int { return v + 250 })
	assert.Equal(t, 250, got)

	raw, err := backend.GetItem(ctx, "waterIntake_u1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-06-02","value":250}`, raw)
}

func TestDayBoundaryFollowsConfiguredLocation(t *testing.T) {
	brt := time.FixedZone("BRT", -3*60*60)
	now := time.Date(2024, 6, 2, 1, 30, 0, 0, time.UTC)

	utcStore := New(NewMemoryBackend(), WithNow(func() time.Time { return now }))
	localStore := New(NewMemoryBackend(), WithNow(func() time.Time { return now }), WithLocation(brt))

	assert.Equal(t, "2024-06-02", utcStore.Today())
	assert.Equal(t, "2024-06-01", localStore.Today())
}
