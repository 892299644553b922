package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/refbase/internal/pkg/auth"
)

// Middleware fonksiyonları burada olacak

// sessionKey is the gin context key the session travels under.
const sessionKey = "session"

// GetSession returns the caller's session from the request context. A
// request that never went through WithSession is anonymous.
func GetSession(c *gin.Context) auth.Session {
	if v, exists := c.Get(sessionKey); exists {
		if session, ok := v.(auth.Session); ok {
			return session
		}
	}
	return auth.Anonymous()
}
