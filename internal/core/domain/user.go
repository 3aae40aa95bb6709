package domain

import "time"

const (
	// DefaultPhoto is assigned at registration until the user sets one.
	DefaultPhoto = "https://i.ibb.co/4pDNDk1/avatar.png"
	DefaultPhone = "+381"
	DefaultBio   = "bio"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
	// MaxBioLength caps the free-text bio field.
	MaxBioLength = 250
)

// User models a registered account. Each user privately owns its products
// and at most one live reset token.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Photo        string    `json:"photo"`
	Phone        string    `json:"phone"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
