package middleware

import (
	"net/http"

	"marketplace-client/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "sid"
	sessionCtxKey = "browser_session"
)

// BrowserSession binds every request to a session in store, keyed by the sid
// cookie. Browsers without a valid sid get a fresh one.
func BrowserSession(store session.Store, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(sid) != nil {
			sid = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(sessionCtxKey, session.NewWithKey(store, session.BrowserKey(sid)))
		c.Next()
	}
}

// Session returns the session bound by BrowserSession
func Session(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
