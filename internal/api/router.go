package api

import (
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/blog-articles-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates a Gin router that serves the handler over plain HTTP
// for local development. Every path other than /health and /metrics is
// forwarded to the handler.
func NewRouter(h *Handler, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))

	router.GET("/health", healthCheck)
	router.GET("/metrics", metrics.Exposer())

	router.NoRoute(proxyHandler(h))

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "blog-articles-api",
	})
}

// proxyHandler adapts an HTTP request into an API Gateway proxy event
// and writes the handler's response back verbatim
func proxyHandler(h *Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := toProxyRequest(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		resp, _ := h.Handle(c.Request.Context(), req)

		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Status(resp.StatusCode)
		if resp.Body == "" {
			c.Writer.WriteHeaderNow()
			return
		}
		c.Writer.WriteString(resp.Body)
	}
}

func toProxyRequest(c *gin.Context) (events.APIGatewayProxyRequest, error) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, err
		}
	}

	query := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	headers := make(map[string]string)
	for k := range c.Request.Header {
		headers[k] = c.GetHeader(k)
	}

	return events.APIGatewayProxyRequest{
		Path:                  c.Request.URL.Path,
		HTTPMethod:            c.Request.Method,
		Headers:               headers,
		QueryStringParameters: query,
		Body:                  string(body),
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: c.GetHeader("X-Request-ID"),
		},
	}, nil
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log.Debug().
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request served")
	}
}
