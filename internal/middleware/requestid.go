package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderXRequestID = "X-Request-ID"
	ContextRequestID = "request_id"
	contextLogger    = "request_logger"
)

// RequestID tags each request with a unique id, honoring one supplied by
// the caller, and binds a logger carrying that id so every line logged
// for the request can be correlated without re-plumbing the id.
func RequestID(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderXRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(ContextRequestID, rid)
		c.Set(contextLogger, log.With().Str(ContextRequestID, rid).Logger())
		c.Header(HeaderXRequestID, rid)
		c.Next()
	}
}

// RequestLogger returns the request-scoped logger bound by RequestID, or
// fallback when the middleware is not mounted.
func RequestLogger(c *gin.Context, fallback zerolog.Logger) zerolog.Logger {
	if v, ok := c.Get(contextLogger); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return l
		}
	}
	return fallback
}
