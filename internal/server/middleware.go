package server

import (
	"strings"
	"time"

	"github.com/Zachkp/portfolio/internal/logging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// untrackedPrefixes are paths the visitor log skips.
var untrackedPrefixes = []string{"/static/", "/favicon", "/healthz"}

// requestLogger replaces gin's default logger with a zap line per request.
func requestLogger() gin.HandlerFunc {
	log := logging.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("Request failed", fields...)
		default:
			log.Debug("Request served", fields...)
		}
	}
}

// visitorLogger records page views with a hashed client address. Static
// assets are skipped and a DNT header is honored.
func visitorLogger() gin.HandlerFunc {
	log := logging.Named("visitors")
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		log.Info("Visit",
			zap.String("visitor", logging.Anonymize(c.ClientIP())),
			zap.String("path", path),
			zap.String("user_agent", c.Request.UserAgent()),
		)
		c.Next()
	}
}
