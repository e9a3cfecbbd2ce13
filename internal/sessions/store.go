package sessions

import (
	"context"
	"time"
)

// Store keeps short-lived auth state: revoked token ids and single-use
// password reset tokens.
type Store interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error

	IsRevoked(ctx context.Context, tokenID string) (bool, error)

	PutResetToken(ctx context.Context, token, userID string, ttl time.Duration) error

	// ConsumeResetToken returns the user id bound to token and invalidates it.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}
