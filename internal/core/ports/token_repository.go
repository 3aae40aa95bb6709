package ports

import (
	"context"
	"time"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// TokenRepository defines persistence for password reset tokens.
type TokenRepository interface {
	Insert(ctx context.Context, token *domain.ResetToken) error
	// FindLive returns the token whose digest matches and whose expiry is
	// after now. A miss (unknown or expired) yields domain.ErrTokenInvalid.
	FindLive(ctx context.Context, tokenHash string, now time.Time) (*domain.ResetToken, error)
	// DeleteByUser removes any token held by the user. Deleting a user with
	// no token is not an error.
	DeleteByUser(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
