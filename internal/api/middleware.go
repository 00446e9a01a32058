package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

func requestLogger() gin.HandlerFunc {
	log := logger.WithComponent("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if status >= 500 {
			log.Error("Request failed", args...)
			return
		}
		log.Info("Request handled", args...)
	}
}
