package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestObserver records storefront request metrics
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// Metrics reports every request to observer. A nil observer disables it.
func Metrics(observer RequestObserver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if observer == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// route template keeps the dimension count bounded
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		observer.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
