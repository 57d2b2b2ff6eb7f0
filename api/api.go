package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/Domenick1991/flightgateway/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userHeader = "X-User-Name"

// username reads the caller identity. A missing header answers 400.
func username(c *gin.Context) (string, bool) {
	name := c.GetHeader(userHeader)
	if name == "" {
		c.String(http.StatusBadRequest, "Bad request")
		return "", false
	}
	return name, true
}

// writeError maps the domain taxonomy onto plain-text HTTP answers.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrBadRequest) {
		c.String(http.StatusBadRequest, "Bad request")
		return
	}
	c.String(http.StatusNotFound, "Not found")
}

func RegisterHealth(router *gin.RouterGroup) {
	router.GET("/manage/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Up and running")
	})
}

// RequestLogger logs one line per handled request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if user := c.GetHeader(userHeader); user != "" {
			fields = append(fields, zap.String("user", user))
		}
		if c.Writer.Status() >= http.StatusBadRequest {
			logger.Warn("request failed", fields...)
			return
		}
		logger.Info("request", fields...)
	}
}
