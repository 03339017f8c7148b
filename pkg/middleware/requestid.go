package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rawuh-in/console/pkg/logger"
)

// HeaderRequestID is the header carrying the request id in and out.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns each request an id, reusing the caller's when one
// is supplied, and echoes it back in the response headers. The id is
// stored on the request context under logger.RequestIDKey so log lines
// carry it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		ctx := context.WithValue(c.Request.Context(), logger.RequestIDKey, id)
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderRequestID, id)
		c.Next()
	}
}
