package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alcyxob/exercise-tracker/internal/config"
	"github.com/alcyxob/exercise-tracker/internal/metrics"
)

// Constants for context keys
const (
	RequestIDHeader     = "X-Request-ID"
	ContextRequestIDKey = "requestID"
	ContextLoggerKey    = "logger"
)

// RequestID reuses an upstream X-Request-ID or generates one, and echoes it
// back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// RequestLogger stores a request scoped logger in the context and writes one
// line per request. POST URLs are prefixed with baseURL so they can be
// replayed against the public host.
func RequestLogger(base zerolog.Logger, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqLog := base.With().Str("request_id", c.GetString(ContextRequestIDKey)).Logger()
		c.Set(ContextLoggerKey, &reqLog)

		c.Next()

		reqLog.Info().
			Str("method", c.Request.Method).
			Str("url", effectiveURL(c.Request, baseURL)).
			Str("ip", c.ClientIP()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func effectiveURL(r *http.Request, baseURL string) string {
	uri := r.URL.RequestURI()
	if r.Method == http.MethodPost {
		return baseURL + uri
	}
	return uri
}

// Metrics records request counts and latency per matched route.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CORS permits cross-origin calls from the configured origins, or from any
// origin when none are restricted.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if cfg.AllowAll() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	return cors.New(corsConfig)
}

// loggerFromContext returns the request scoped logger, or a no-op logger
// when RequestLogger did not run.
func loggerFromContext(c *gin.Context) *zerolog.Logger {
	if l, ok := c.Get(ContextLoggerKey); ok {
		if logger, ok := l.(*zerolog.Logger); ok {
			return logger
		}
	}
	nop := zerolog.Nop()
	return &nop
}
