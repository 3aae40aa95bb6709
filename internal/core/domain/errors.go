package domain

import "errors"

// Sentinel errors shared across services. The HTTP layer maps each to a
// status code in internal/api/error_handler.go; services wrap them with
// fmt.Errorf("%w: ...") when extra detail helps the caller.
var (
	ErrValidation         = errors.New("validation failed")
	ErrEmailRegistered    = errors.New("email has already been registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrNotOwner           = errors.New("user not authorized")
	ErrTokenInvalid       = errors.New("invalid or expired token")
	ErrFileTooLarge       = errors.New("file exceeds maximum upload size")
	ErrUploadFailed       = errors.New("image could not be uploaded")
	ErrEmailNotSent       = errors.New("email not sent, please try again")
)
