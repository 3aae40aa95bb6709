package domain

import "time"

// ResetTokenTTL is the validity window of a password reset token.
const ResetTokenTTL = 30 * time.Minute

// ResetToken links the SHA-256 digest of an emailed secret to a user.
// Single use: a new forgot-password request replaces any prior token, and
// a successful reset deletes the record.
type ResetToken struct {
	ID        string
	UserID    string
	TokenHash string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Live reports whether the token is still within its validity window.
func (t ResetToken) Live(now time.Time) bool {
	return t.ExpiresAt.After(now)
}
