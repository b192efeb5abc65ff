// Package storage persists JSON values under string keys, with an optional
// day-scoped envelope that expires at the next calendar day.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by a Backend when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrQuotaExceeded is returned by a Backend that refuses a write for lack of space.
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Backend is the raw string medium a KeyValueStore writes into.
type Backend interface {
	GetItem(ctx context.Context, key string) (string, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
