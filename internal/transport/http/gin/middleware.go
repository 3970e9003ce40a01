package httpgin

import (
	"log/slog"
	"regexp"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const headerRequestID = "X-Request-ID"

// RequestIDMiddleware tags every request with a correlation id, reusing
// the caller's when one is supplied.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(headerRequestID)
		if reqID == "" || len(reqID) > 128 {
			reqID = uuid.New().String()
		}

		c.Writer.Header().Set(headerRequestID, reqID)
		c.Set("request_id", reqID)

		c.Next()
	}
}

// The seat-map widget is served from a local dev origin; only localhost
// variants may call the API from a browser.
var localOrigin = regexp.MustCompile(`^https?://(localhost|127\.0\.0\.1)(:\d+)?$`)

func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: localOrigin.MatchString,
		AllowMethods: []string{
			"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"Authorization",
			"X-Requested-With",
			headerRequestID,
			"Idempotency-Key",
			"If-None-Match",
		},
		ExposeHeaders: []string{
			headerRequestID,
			"ETag",
			"Cache-Control",
		},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// LoggingMiddleware emits one structured line per request. Severity
// follows the response: 5xx and handler errors log at error, 4xx at
// warn, the rest at info.
func LoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		reqID, _ := c.Get("request_id")

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("route", c.FullPath()),
			slog.String("path", c.Request.URL.RequestURI()),
			slog.Int("status", status),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
			slog.String("ip", c.ClientIP()),
			slog.Any("request_id", reqID),
			slog.Int("bytes_out", c.Writer.Size()),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case status >= 500 || len(c.Errors) > 0:
			logger.Error("request", attrs...)
		case status >= 400:
			logger.Warn("request", attrs...)
		default:
			logger.Info("request", attrs...)
		}
	}
}
