package identity

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vapeonx/storefront/models"
	"github.com/vapeonx/storefront/utils"
)

type localUser struct {
	user         models.User
	passwordHash []byte
}

// LocalProvider is an in-memory stand-in for the hosted identity provider,
// used in development and tests. Passwords are bcrypt hashed and tokens are
// HS256 JWTs.
type LocalProvider struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.RWMutex
	users   map[string]*localUser // by normalized email
	revoked map[string]time.Time  // jti -> token expiry
}

// NewLocalProvider creates an empty user directory signing tokens with secret.
func NewLocalProvider(secret string, ttl time.Duration, logger *zap.Logger) *LocalProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalProvider{
		secret:  []byte(secret),
		ttl:     ttl,
		logger:  logger,
		users:   make(map[string]*localUser),
		revoked: make(map[string]time.Time),
	}
}

func (p *LocalProvider) SignUp(_ context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(creds.Email)
	p.mu.Lock()
	if _, exists := p.users[email]; exists {
		p.mu.Unlock()
		return nil, ErrEmailExists
	}
	u := &localUser{
		user:         models.User{UID: uuid.NewString(), Email: email, DisplayName: creds.DisplayName},
		passwordHash: hash,
	}
	p.users[email] = u
	p.mu.Unlock()

	p.logger.Info("user signed up", zap.String("uid", u.user.UID))
	return p.issue(u.user)
}

func (p *LocalProvider) SignIn(_ context.Context, email, password string) (*models.AuthResponse, error) {
	p.mu.RLock()
	u, ok := p.users[normalizeEmail(email)]
	p.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// Compare password
	if err := bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return p.issue(u.user)
}

// SignOut revokes the token. Signing out with an invalid token is a no-op.
func (p *LocalProvider) SignOut(_ context.Context, token string) error {
	claims, err := utils.ValidateToken(p.secret, token)
	if err != nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.revoked[claims.ID] = claims.ExpiresAt.Time
	p.pruneRevoked(time.Now())
	return nil
}

func (p *LocalProvider) CurrentUser(_ context.Context, token string) (*models.User, error) {
	claims, err := utils.ValidateToken(p.secret, token)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidToken) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, revoked := p.revoked[claims.ID]; revoked {
		return nil, ErrInvalidToken
	}
	u, ok := p.users[claims.Email]
	if !ok || u.user.UID != claims.Subject {
		return nil, ErrInvalidToken
	}
	user := u.user
	return &user, nil
}

func (p *LocalProvider) issue(user models.User) (*models.AuthResponse, error) {
	token, _, err := utils.GenerateJWT(p.secret, user, p.ttl)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{User: &user, Token: token}, nil
}

// pruneRevoked drops entries whose token has expired anyway. Callers hold mu.
func (p *LocalProvider) pruneRevoked(now time.Time) {
	for jti, exp := range p.revoked {
		if now.After(exp) {
			delete(p.revoked, jti)
		}
	}
}
