package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapeonx/storefront/models"
)

func TestLocalProvider_SignUpSignIn(t *testing.T) {
	p := NewLocalProvider("secret", time.Hour, nil)
	ctx := context.Background()

	res, err := p.SignUp(ctx, models.Credentials{Email: "Mia@Example.com", Password: "hunter22", DisplayName: "Mia"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEmpty(t, res.User.UID)
	assert.Equal(t, "mia@example.com", res.User.Email)

	user, err := p.CurrentUser(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User, user)

	signedIn, err := p.SignIn(ctx, "mia@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, res.User.UID, signedIn.User.UID)
	assert.Equal(t, "Mia", signedIn.User.DisplayName)
}

func TestLocalProvider_SignUpErrors(t *testing.T) {
	p := NewLocalProvider("secret", time.Hour, nil)
	ctx := context.Background()

	_, err := p.SignUp(ctx, models.Credentials{Email: "not-an-email", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = p.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "123"})
	assert.ErrorIs(t, err, ErrWeakPassword)

	_, err = p.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)
	_, err = p.SignUp(ctx, models.Credentials{Email: "A@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestLocalProvider_SignInErrors(t *testing.T) {
	p := NewLocalProvider("secret", time.Hour, nil)
	ctx := context.Background()

	_, err := p.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = p.SignIn(ctx, "a@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = p.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocalProvider_SignOutRevokes(t *testing.T) {
	p := NewLocalProvider("secret", time.Hour, nil)
	ctx := context.Background()

	res, err := p.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)

	require.NoError(t, p.SignOut(ctx, res.Token))
	_, err = p.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	assert.NoError(t, p.SignOut(ctx, "garbage"))
}

func TestLocalProvider_RejectsForeignTokens(t *testing.T) {
	issuer := NewLocalProvider("secret", time.Hour, nil)
	other := NewLocalProvider("secret", time.Hour, nil)
	ctx := context.Background()

	res, err := issuer.SignUp(ctx, models.Credentials{Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)

	_, err = other.CurrentUser(ctx, res.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "unknown user")

	_, err = issuer.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
