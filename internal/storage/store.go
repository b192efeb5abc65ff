package storage

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// KeyValueStore reads and writes JSON values through a Backend. Reads fall
// back to a caller-supplied default and writes are best effort: no operation
// returns an error, failures are logged instead.
type KeyValueStore struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
	loc     *time.Location
}

// Option configures a KeyValueStore.
type Option func(*KeyValueStore)

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(logger *zap.Logger) Option {
	return func(s *KeyValueStore) {
		s.logger = logger
	}
}

// WithNow sets the clock used to stamp and check daily envelopes.
func WithNow(now func() time.Time) Option {
	return func(s *KeyValueStore) {
		s.now = now
	}
}

// WithLocation sets the time zone whose midnight ends a day. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *KeyValueStore) {
		s.loc = loc
	}
}

// New creates a KeyValueStore over backend.
func New(backend Backend, opts ...Option) *KeyValueStore {
	s := &KeyValueStore{
		backend: backend,
		logger:  zap.NewNop(),
		now:     time.Now,
		loc:     time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key decoded as T. A missing key, a
// backend failure or data that does not decode into T all yield def.
func Get[T any](ctx context.Context, s *KeyValueStore, key string, def T) T {
	raw, err := s.backend.GetItem(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def
	}
	if err != nil {
		s.logger.Warn("failed to read stored value", zap.String("key", key), zap.Error(err))
		return def
	}

	var value T
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		s.logger.Warn("failed to decode stored value", zap.String("key", key), zap.Error(err))
		return def
	}
	return value
}

// Set encodes value and writes it under key, overwriting any previous value.
func Set[T any](ctx context.Context, s *KeyValueStore, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.backend.SetItem(ctx, key, string(data)); err != nil {
		s.logger.Error("failed to persist value", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes key from the backend.
func Remove(ctx context.Context, s *KeyValueStore, key string) {
	if err := s.backend.RemoveItem(ctx, key); err != nil {
		s.logger.Error("failed to remove value", zap.String("key", key), zap.Error(err))
	}
}

// Item is a typed handle on one key. It holds the value in memory and treats
// that copy as authoritative for its lifetime, so a failed write never loses
// the caller's state.
type Item[T any] struct {
	mu    sync.Mutex
	store *KeyValueStore
	key   string
	value T
}

// Load reads key once and returns a handle holding the result.
func Load[T any](ctx context.Context, s *KeyValueStore, key string, def T) *Item[T] {
	return &Item[T]{
		store: s,
		key:   key,
		value: Get(ctx, s, key, def),
	}
}

// Key returns the key the handle is bound to.
func (i *Item[T]) Key() string {
	return i.key
}

// Value returns the in-memory value.
func (i *Item[T]) Value() T {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.value
}

// Set replaces the value and persists it.
func (i *Item[T]) Set(ctx context.Context, value T) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = value
	Set(ctx, i.store, i.key, value)
}

// Update replaces the value with fn applied to the in-memory value, persists
// it and returns it.
func (i *Item[T]) Update(ctx context.Context, fn func(T) T) T {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.value = fn(i.value)
	Set(ctx, i.store, i.key, i.value)
	return i.value
}
