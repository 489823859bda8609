package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapeonx/storefront/middleware"
	"github.com/vapeonx/storefront/session"
)

func TestCheckConnection(t *testing.T) {
	h := newTestHandler(t)
	b := newBrowser(t, NewRouter(h, RouterOptions{}))

	w := b.do(http.MethodGet, "/health-check", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	h.Health = brokenBackend{}
	w = b.do(http.MethodGet, "/health-check", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Session backend connection failed", decode(t, w)["error"])
}

func TestServerSideSessions(t *testing.T) {
	backend := session.NewMemoryStore(nil)
	h := newTestHandler(t)
	h.Health = backend
	router := NewRouter(h, RouterOptions{Backend: backend})

	alice := newBrowser(t, router)
	bob := newBrowser(t, router)

	w := alice.do(http.MethodPost, "/cart/add", map[string]any{"product": podProduct, "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, alice.cookies[middleware.SessionCookie])
	assert.Nil(t, alice.cookies["cart"])

	w = alice.do(http.MethodGet, "/cart", nil)
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, float64(3), items[0].(map[string]any)["quantity"])

	w = bob.do(http.MethodGet, "/cart", nil)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())

	assert.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/health-check", nil).Code)
}
