package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DateLayout is the format of an envelope date stamp.
const DateLayout = "2006-01-02"

// Envelope is the persisted form of a day-scoped value.
type Envelope[T any] struct {
	Date  string `json:"date"`
	Value T      `json:"value"`
}

// storedEnvelope defers decoding the value until the date has been checked.
type storedEnvelope struct {
	Date  *string         `json:"date"`
	Value json.RawMessage `json:"value"`
}

// DateString formats t as a calendar date in loc.
func DateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// Today returns the store's current calendar date.
func (s *KeyValueStore) Today() string {
	return DateString(s.now(), s.loc)
}

// ReadDaily returns the value written under key today. Anything else, an
// envelope from an earlier day included, yields def. Stale envelopes are left
// in place until the next write.
func ReadDaily[T any](ctx context.Context, s *KeyValueStore, key string, def T) T {
	return readDailyOn(ctx, s, key, def, s.Today())
}

// WriteDaily stamps value with today's date and persists it under key.
func WriteDaily[T any](ctx context.Context, s *KeyValueStore, key string, value T) {
	writeDailyOn(ctx, s, key, value, s.Today())
}

func readDailyOn[T any](ctx context.Context, s *KeyValueStore, key string, def T, today string) T {
	env := Get[*storedEnvelope](ctx, s, key, nil)
	if env == nil {
		return def
	}
	if env.Date == nil {
		s.logger.Warn("daily value has no date", zap.String("key", key))
		return def
	}
	if _, err := time.Parse(DateLayout, *env.Date); err != nil {
		s.logger.Warn("daily value has malformed date", zap.String("key", key), zap.String("date", *env.Date))
		return def
	}
	if *env.Date != today {
		return def
	}

	raw := bytes.TrimSpace(env.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return def
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("daily value has unexpected shape", zap.String("key", key), zap.Error(err))
		return def
	}
	return value
}

func writeDailyOn[T any](ctx context.Context, s *KeyValueStore, key string, value T, today string) {
	Set(ctx, s, key, Envelope[T]{Date: today, Value: value})
}

// DailyItem is a typed handle on a day-scoped key. Once the store's date moves
// past the day the in-memory value was read or written on, the handle
// reports def again.
type DailyItem[T any] struct {
	mu    sync.Mutex
	store *KeyValueStore
	key   string
	def   T
	date  string
	value T
}

// LoadDaily reads key and returns a handle holding today's value.
func LoadDaily[T any](ctx context.Context, s *KeyValueStore, key string, def T) *DailyItem[T] {
	today := s.Today()
	return &DailyItem[T]{
		store: s,
		key:   key,
		def:   def,
		date:  today,
		value: readDailyOn(ctx, s, key, def, today),
	}
}

// Key returns the key the handle is bound to.
func (d *DailyItem[T]) Key() string {
	return d.key
}

// Value returns today's in-memory value.
func (d *DailyItem[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rollover()
	return d.value
}

// Set replaces today's value and persists it.
func (d *DailyItem[T]) Set(ctx context.Context, value T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	today := d.rollover()
	d.value = value
	writeDailyOn(ctx, d.store, d.key, value, today)
}

// Update applies fn to today's in-memory value, persists the result and
// returns it.
func (d *DailyItem[T]) Update(ctx context.Context, fn func(T) T) T {
	d.mu.Lock()
	defer d.mu.Unlock()
	today := d.rollover()
	d.value = fn(d.value)
	writeDailyOn(ctx, d.store, d.key, d.value, today)
	return d.value
}

// rollover resets the in-memory value when the day has changed and returns
// the current date. Callers hold d.mu.
func (d *DailyItem[T]) rollover() string {
	today := d.store.Today()
	if d.date != today {
		d.date = today
		d.value = d.def
	}
	return today
}

// UserKey scopes a key prefix to one user, e.g. waterIntake_<userID>.
func UserKey(prefix, userID string) string {
	return prefix + "_" + userID
}
