// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/stockchef/stockchef/internal/infrastructure/config"
	"github.com/stockchef/stockchef/pkg/errors"
)

// Middleware provides all middleware functions
type Middleware struct {
	config  *config.Config
	logger  *zap.Logger
	limiter *rate.Limiter
	metrics *Metrics
}

// New creates a new middleware instance
func New(cfg *config.Config, logger *zap.Logger) *Middleware {
	limiter := rate.NewLimiter(
		rate.Limit(cfg.RateLimit.RequestsPerMin)/60,
		cfg.RateLimit.BurstSize,
	)

	return &Middleware{
		config:  cfg,
		logger:  logger,
		limiter: limiter,
		metrics: NewMetrics(),
	}
}

// RequestID adds a unique request ID to the context
func (m *Middleware) RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// Logger provides structured logging for requests
func (m *Middleware) Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if path == "/health" {
			return
		}

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		errorMessage := c.Errors.ByType(gin.ErrorTypePrivate).String()

		if raw != "" {
			path = path + "?" + raw
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Int("status", statusCode),
			zap.Duration("latency", latency),
		}

		if userID, exists := c.Get("user_id"); exists {
			if id, ok := userID.(uuid.UUID); ok {
				fields = append(fields, zap.String("user_id", id.String()))
			}
		}

		switch {
		case statusCode >= 500:
			m.logger.Error("Server error", append(fields, zap.String("error", errorMessage))...)
		case statusCode >= 400:
			m.logger.Warn("Client error", append(fields, zap.String("error", errorMessage))...)
		default:
			m.logger.Info("Request completed", fields...)
		}

		m.metrics.RecordRequest(c.Request.Method, c.FullPath(), statusCode, latency)
	}
}

// Recovery recovers from panics and returns 500 error
func (m *Middleware) Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				m.logger.Error("Panic recovered",
					zap.String("request_id", c.GetString("request_id")),
					zap.Any("error", err),
					zap.String("stack", string(debug.Stack())),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "Internal server error",
					"request_id": c.GetString("request_id"),
				})
			}
		}()

		c.Next()
	}
}

// CORS handles Cross-Origin Resource Sharing
func (m *Middleware) CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		if m.isOriginAllowed(origin) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimit implements rate limiting
func (m *Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.config.RateLimit.Enable {
			c.Next()
			return
		}

		if !m.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Rate limit exceeded",
				"retry_after": "60",
			})
			return
		}

		c.Next()
	}
}

// Security adds security headers
func (m *Middleware) Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Server", "")

		c.Next()
	}
}

// ErrorHandler handles errors in a consistent way
func (m *Middleware) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()

		var appErr *errors.AppError
		if e, ok := err.Err.(*errors.AppError); ok {
			appErr = e
		} else {
			appErr = errors.NewAppError(
				errors.CodeInternal,
				"An unexpected error occurred",
				err.Error(),
			)
		}

		m.logger.Error("Request error",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.String("details", appErr.Details),
		)

		c.JSON(appErr.StatusCode(), gin.H{
			"error": gin.H{
				"code":       appErr.Code,
				"message":    appErr.Message,
				"request_id": c.GetString("request_id"),
			},
		})
	}
}

// isOriginAllowed checks if origin is in allowed list
func (m *Middleware) isOriginAllowed(origin string) bool {
	if m.config.IsDevelopment() {
		return true
	}

	for _, allowed := range m.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	return false
}

// Metrics for monitoring
type Metrics struct {
	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
}

// NewMetrics creates new metrics
func NewMetrics() *Metrics {
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	requestCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// Reuse collectors when a second instance registers the same metrics.
	if err := prometheus.Register(requestDuration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requestDuration = are.ExistingCollector.(*prometheus.HistogramVec)
		}
	}
	if err := prometheus.Register(requestCount); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requestCount = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestCount:    requestCount,
	}
}

// RecordRequest records request metrics
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	statusStr := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, statusStr).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, statusStr).Inc()
}
