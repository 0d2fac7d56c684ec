// Package kv provides string key-value stores used to persist client state.
// Get returns domain.ErrNotFound when the key is absent.
package kv

import "context"

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
