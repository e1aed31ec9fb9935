package middleware

import (
	"storefront-gateway/services"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "storefront_session"

// SessionMiddleware resolves the caller's session from the storefront
// cookie, minting a fresh one when the cookie is missing or no longer
// known.
func SessionMiddleware(store *services.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(sessionCookie); err == nil {
			if sess, ok := store.Get(id); ok {
				c.Set("session", sess)
				c.Next()
				return
			}
		}

		sess := store.Create()
		setSessionCookie(c, store, sess.ID)
		c.Set("session", sess)
		c.Next()
	}
}

func setSessionCookie(c *gin.Context, store *services.SessionStore, id string) {
	c.SetCookie(sessionCookie, id, int(store.TTL().Seconds()), "/", "", false, true)
}
