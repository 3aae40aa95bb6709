package ports

import (
	"context"

	"github.com/stockroom/inventory-api/internal/core/domain"
)

// UpdateProfileInput carries a partial profile update. Nil fields keep the
// stored value; email is never changed through this path.
type UpdateProfileInput struct {
	Name  *string
	Phone *string
	Bio   *string
	Photo *string
}

// AuthService covers account lifecycle and session management.
type AuthService interface {
	// Register creates an account and returns it with a signed session token.
	Register(ctx context.Context, name, email, password string) (*domain.User, string, error)
	// Login verifies credentials and returns the user with a session token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// VerifySession reports whether the token is structurally valid and
	// unexpired. It never returns an error: missing, malformed, and expired
	// tokens are all simply false.
	VerifySession(token string) bool
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	// ForgotPassword issues a reset token and emails the reset link.
	ForgotPassword(ctx context.Context, email string) error
	// ResetPassword consumes a raw reset token and sets the new password.
	ResetPassword(ctx context.Context, rawToken, newPassword string) error
}
