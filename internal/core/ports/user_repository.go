package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Update overwrites the mutable profile fields and the password hash.
	Update(ctx context.Context, user *domain.User) error
}
