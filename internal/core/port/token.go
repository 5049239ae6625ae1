package port

import (
	"context"

	"taskboard/internal/core/domain"
)

// TokenCache is a read-through cache in front of the users table for
// token lookups. The stored row is always the source of truth: entries are
// TTL-bound and invalidated on login and logout.
type TokenCache interface {
	Get(ctx context.Context, token string) (domain.User, bool)
	Set(ctx context.Context, token string, user domain.User) error
	Invalidate(ctx context.Context, token string) error
}
