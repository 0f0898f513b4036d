package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoStore disables intermediary and browser caching. Session state
// changes on every submission and replies carry candidate answers, so
// none of the interview endpoints may be cached.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
