package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders adds security-related headers to storefront responses
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; form-action 'self'")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		// pages carry per-session state
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}
