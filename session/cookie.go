package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MaxCookieSize is the largest encoded value a browser is guaranteed to keep.
const MaxCookieSize = 4096

// CookieStore keeps each key in a cookie of the same name. Values are
// URL-encoded on the wire. It is bound to one request/response pair.
type CookieStore struct {
	w       http.ResponseWriter
	r       *http.Request
	secure  bool
	written map[string]string
}

// NewCookieStore binds a store to the cookies of r and the headers of w.
// secure marks written cookies as HTTPS-only.
func NewCookieStore(w http.ResponseWriter, r *http.Request, secure bool) *CookieStore {
	return &CookieStore{
		w:       w,
		r:       r,
		secure:  secure,
		written: make(map[string]string),
	}
}

// Get returns the decoded cookie value. Values written earlier in the same
// request take precedence over the incoming cookie.
func (s *CookieStore) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := s.written[key]; ok {
		return v, true, nil
	}

	c, err := s.r.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cookie %q: %w", key, err)
	}

	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", false, fmt.Errorf("cookie %q: %w", key, ErrCorruptValue)
	}
	return v, true, nil
}

// Set writes a Set-Cookie header with Path=/ and SameSite=Strict.
func (s *CookieStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	encoded := url.QueryEscape(value)
	if len(encoded) > MaxCookieSize {
		return fmt.Errorf("cookie %q is %d bytes: %w", key, len(encoded), ErrValueTooLarge)
	}

	cookie := &http.Cookie{
		Name:     key,
		Value:    encoded,
		Path:     "/",
		SameSite: http.SameSiteStrictMode,
		Secure:   s.secure,
	}
	if ttl > 0 {
		cookie.MaxAge = int(ttl / time.Second)
	}

	http.SetCookie(s.w, cookie)
	s.written[key] = value
	return nil
}
