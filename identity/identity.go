// Package identity is the storefront's view of the external identity
// provider: sign-up, sign-in, sign-out and resolving the current user from a
// token. The storefront never stores credentials itself outside the local
// development provider.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/vapeonx/storefront/models"
)

// MinPasswordLength matches the provider's own minimum.
const MinPasswordLength = 6

var (
	ErrEmailExists        = errors.New("email already in use")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnavailable        = errors.New("identity provider unavailable")
)

// Provider is the contract the storefront consumes.
type Provider interface {
	SignUp(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
	// CurrentUser resolves a token issued by SignUp or SignIn.
	CurrentUser(ctx context.Context, token string) (*models.User, error)
}

func validateCredentials(creds models.Credentials) error {
	if _, err := mail.ParseAddress(creds.Email); err != nil || strings.ContainsAny(creds.Email, " <>") {
		return ErrInvalidEmail
	}
	if len(creds.Password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
