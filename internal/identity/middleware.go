package identity

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const contextKey = "visitor_id"

// resolves the client identity once per request and stores it in the
// gin context for handlers downstream
func Middleware(source Source) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := source.Identify(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "identity_required",
				"message": "could not identify client",
			})
			c.Abort()
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// extracts the visitor identifier set by Middleware
func FromContext(c *gin.Context) (string, bool) {
	id, exists := c.Get(contextKey)
	if !exists {
		return "", false
	}

	return id.(string), true
}
