package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vapeonx/storefront/session"
)

// SessionCookie carries the session id when state lives server side.
const SessionCookie = "sid"

const (
	sessionKey = "session"
	sessionTTL = 365 * 24 * time.Hour
)

// Session binds a session.Store to every request. With a nil backend, state
// is kept in the browser's cookies; otherwise it is kept in backend under a
// per-browser session id.
func Session(backend session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if backend == nil {
			c.Set(sessionKey, session.Store(session.NewCookieStore(c.Writer, c.Request, secure)))
			c.Next()
			return
		}

		sid, err := c.Cookie(SessionCookie)
		if _, perr := uuid.Parse(sid); err != nil || perr != nil {
			sid = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(sessionTTL / time.Second),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteStrictMode,
			})
		}
		c.Set(sessionKey, session.Scope(backend, sid))
		c.Next()
	}
}

// SessionStore returns the store bound by Session.
func SessionStore(c *gin.Context) session.Store {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	kv, _ := v.(session.Store)
	return kv
}
