package middleware

import (
	"marketplace-client/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing the caller's X-Request-ID
// when present. The id is stored on the gin context and on the request
// context so outgoing API calls carry it too.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(logger.RequestIDKey, rid)
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), rid))
		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
