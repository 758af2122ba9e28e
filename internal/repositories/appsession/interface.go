package appsession

import (
	"context"
)

// Repository is the durable mirror of the current identity: a single row
// with a fixed key.
type Repository interface {
	// Get returns the mirrored user id and whether a row exists.
	Get(ctx context.Context) (int64, bool, error)
	Set(ctx context.Context, userID int64) error
	Delete(ctx context.Context) error
}
