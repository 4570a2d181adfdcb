package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDKey is the gin context key carrying the request id echoed in
// response metadata.
const RequestIDKey = "request_id"

// LoggerMiddleware tags every request with an id and logs method, path,
// status, latency and client address on completion.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		id := shortID(requestID)
		log.Printf("[%s] %s %s | %d | %v | %s",
			id,
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start),
			c.ClientIP(),
		)

		for _, e := range c.Errors {
			log.Printf("[%s] error: %v", id, e.Err)
		}
	}
}

// shortID keeps log lines compact; client-supplied ids can be any length.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
