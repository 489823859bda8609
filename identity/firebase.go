package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/models"
)

// DefaultFirebaseBaseURL is the Identity Toolkit REST endpoint.
const DefaultFirebaseBaseURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseProvider talks to Firebase Authentication through the Identity
// Toolkit REST API using a web API key.
type FirebaseProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger

	mu      sync.Mutex
	revoked map[string]struct{}
}

// FirebaseOption configures a FirebaseProvider.
type FirebaseOption func(*FirebaseProvider)

// WithBaseURL points the provider at another endpoint, e.g. the auth emulator.
func WithBaseURL(u string) FirebaseOption {
	return func(p *FirebaseProvider) {
		p.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the traced default client.
func WithHTTPClient(c *http.Client) FirebaseOption {
	return func(p *FirebaseProvider) {
		p.httpClient = c
	}
}

// NewFirebaseProvider creates a provider for the project owning apiKey.
func NewFirebaseProvider(apiKey string, logger *zap.Logger, opts ...FirebaseOption) *FirebaseProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &FirebaseProvider{
		apiKey:  apiKey,
		baseURL: DefaultFirebaseBaseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		logger:  logger,
		revoked: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type authResult struct {
	IDToken     string `json:"idToken"`
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type lookupResult struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
	} `json:"users"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignUp(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	if err := validateCredentials(creds); err != nil {
		return nil, err
	}

	var res authResult
	err := p.call(ctx, "accounts:signUp", map[string]any{
		"email":             creds.Email,
		"password":          creds.Password,
		"returnSecureToken": true,
	}, &res)
	if err != nil {
		return nil, err
	}

	if creds.DisplayName != "" {
		err := p.call(ctx, "accounts:update", map[string]any{
			"idToken":           res.IDToken,
			"displayName":       creds.DisplayName,
			"returnSecureToken": false,
		}, nil)
		if err != nil {
			p.logger.Warn("failed to set display name", zap.String("uid", res.LocalID), zap.Error(err))
		} else {
			res.DisplayName = creds.DisplayName
		}
	}
	return res.response(), nil
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var res authResult
	err := p.call(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.response(), nil
}

// SignOut forgets the token locally. Firebase ID tokens cannot be revoked
// through the web API; they expire after an hour.
func (p *FirebaseProvider) SignOut(_ context.Context, token string) error {
	if token == "" {
		return nil
	}
	p.mu.Lock()
	p.revoked[token] = struct{}{}
	p.mu.Unlock()
	return nil
}

func (p *FirebaseProvider) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	p.mu.Lock()
	_, revoked := p.revoked[token]
	p.mu.Unlock()
	if revoked {
		return nil, ErrInvalidToken
	}

	var res lookupResult
	if err := p.call(ctx, "accounts:lookup", map[string]any{"idToken": token}, &res); err != nil {
		return nil, err
	}
	if len(res.Users) == 0 {
		return nil, ErrInvalidToken
	}
	u := res.Users[0]
	return &models.User{UID: u.LocalID, Email: u.Email, DisplayName: u.DisplayName}, nil
}

func (r authResult) response() *models.AuthResponse {
	return &models.AuthResponse{
		User:  &models.User{UID: r.LocalID, Email: r.Email, DisplayName: r.DisplayName},
		Token: r.IDToken,
	}
}

func (p *FirebaseProvider) call(ctx context.Context, method string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", p.baseURL, method, url.QueryEscape(p.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, method, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", ErrUnavailable, method, err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		_ = json.Unmarshal(data, &apiErr)
		p.logger.Debug("identity provider rejected request",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("code", apiErr.Error.Message))
		return mapFirebaseError(resp.StatusCode, apiErr.Error.Message)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s response: %w", method, err)
	}
	return nil
}

// mapFirebaseError translates Identity Toolkit error codes. Codes may carry a
// detail suffix, e.g. "WEAK_PASSWORD : Password should be at least 6 characters".
func mapFirebaseError(status int, message string) error {
	code := strings.TrimSpace(strings.SplitN(message, ":", 2)[0])
	switch code {
	case "EMAIL_EXISTS":
		return ErrEmailExists
	case "INVALID_EMAIL":
		return ErrInvalidEmail
	case "WEAK_PASSWORD":
		return ErrWeakPassword
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED":
		return ErrInvalidCredentials
	case "INVALID_ID_TOKEN", "TOKEN_EXPIRED", "USER_NOT_FOUND", "CREDENTIAL_TOO_OLD_LOGIN_AGAIN":
		return ErrInvalidToken
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, status)
	}
	return errors.New("identity provider error: " + message)
}
