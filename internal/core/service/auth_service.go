package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockroom/inventory-api/internal/core/domain"
	"github.com/stockroom/inventory-api/internal/core/ports"
)

const bcryptCost = 10

// AuthService implements account lifecycle, session issuance, and the
// password reset flow.
type AuthService struct {
	users       ports.UserRepository
	tokens      ports.TokenRepository
	mailer      ports.Mailer
	jwtSecret   string
	tokenTTL    time.Duration
	frontendURL string
	logger      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	tokens ports.TokenRepository,
	mailer ports.Mailer,
	jwtSecret string,
	tokenTTL time.Duration,
	frontendURL string,
	logger zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: please fill in all required fields", domain.ErrValidation)
	}
	if len(password) < domain.MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrEmailRegistered
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", err
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Photo:        domain.DefaultPhoto,
		Phone:        domain.DefaultPhone,
		Bio:          domain.DefaultBio,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: please add email and password", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return user, token, nil
}

// VerifySession reports whether the token parses, is HS256-signed with our
// secret, and is unexpired. The status-check endpoint relies on this never
// returning an error.
func (s *AuthService) VerifySession(token string) bool {
	if token == "" {
		return false
	}
	parsed, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	return err == nil && parsed.Valid
}

func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByID(ctx, userID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Bio != nil {
		if len(*in.Bio) > domain.MaxBioLength {
			return nil, fmt.Errorf("%w: bio must not be more than %d characters", domain.ErrValidation, domain.MaxBioLength)
		}
		user.Bio = *in.Bio
	}
	if in.Photo != nil {
		user.Photo = *in.Photo
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: please add old and new password", domain.ErrValidation)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return fmt.Errorf("%w: old password is incorrect", domain.ErrInvalidCredentials)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

// ForgotPassword issues a new reset token for the user and emails the reset
// link. Any prior token is removed first, so at most one token is live per
// user. The token record is intentionally left in place when the email
// fails: delivery and persistence are two independent writes.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.tokens.DeleteByUser(ctx, user.ID); err != nil {
		return err
	}

	raw, err := newResetSecret(user.ID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	token := &domain.ResetToken{
		UserID:    user.ID,
		TokenHash: hashResetSecret(raw),
		CreatedAt: now,
		ExpiresAt: now.Add(domain.ResetTokenTTL),
	}
	if err := s.tokens.Insert(ctx, token); err != nil {
		return err
	}

	resetURL := s.frontendURL + "/resetpassword/" + raw
	id, err := s.mailer.Send(ctx, ports.Message{
		Subject: "Password Reset Request",
		HTML:    resetEmailBody(user.Name, resetURL),
		To:      user.Email,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("reset email delivery failed")
		return fmt.Errorf("%w: %s", domain.ErrEmailNotSent, err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("message_id", id).Msg("reset email sent")
	return nil
}

// ResetPassword consumes a raw reset token. Unknown and expired tokens are
// deliberately indistinguishable to the caller.
func (s *AuthService) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: please add a new password", domain.ErrValidation)
	}

	token, err := s.tokens.FindLive(ctx, hashResetSecret(rawToken), time.Now().UTC())
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, token.UserID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	// Consume the token so it cannot be replayed within its window.
	if err := s.tokens.Delete(ctx, token.ID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to delete consumed reset token")
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) generateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// newResetSecret returns the raw secret embedded in the emailed link: 32
// random bytes hex-encoded with the user id appended.
func newResetSecret(userID string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + userID, nil
}

// hashResetSecret returns the SHA-256 hex digest stored in place of the
// raw secret.
func hashResetSecret(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

func resetEmailBody(name, resetURL string) string {
	return fmt.Sprintf(`<h2>Hello %s</h2>
<p>Please use the url below to reset your password</p>
<p>This reset link is valid for only 30 minutes</p>
<a href=%q clicktracking=off>%s</a>
<p>Regards...</p>`, name, resetURL, resetURL)
}
