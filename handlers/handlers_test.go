package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vapeonx/storefront/catalog"
	"github.com/vapeonx/storefront/identity"
	"github.com/vapeonx/storefront/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return &Handler{
		Carts:     store.NewCartStore(nil),
		Orders:    store.NewOrderStore(nil),
		Addresses: store.NewAddressStore(nil),
		Catalog:   cat,
		Identity:  identity.NewLocalProvider("test-secret", time.Hour, nil),
		Logger:    zap.NewNop(),
		TokenTTL:  time.Hour,
	}
}

// browser replays cookies between requests the way a user agent would.
type browser struct {
	t       *testing.T
	router  http.Handler
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, router http.Handler) *browser {
	return &browser{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(method, path string, body any) *httptest.ResponseRecorder {
	b.t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(b.t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *browser) raw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// brokenBackend is a server-side session backend that always fails.
type brokenBackend struct{}

var errBroken = errors.New("backend unreachable")

func (brokenBackend) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }

func (brokenBackend) Set(context.Context, string, string, time.Duration) error { return errBroken }

func (brokenBackend) Ping(context.Context) error { return errBroken }
