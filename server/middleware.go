package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/fintrack/logger"
)

// requestLogger logs one structured line per request.
func requestLogger(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path
	method := c.Request.Method

	c.Next()

	logger.Info("request",
		logger.Pair("method", method),
		logger.Pair("path", path),
		logger.Pair("status", c.Writer.Status()),
		logger.Pair("cost", time.Since(start).String()))
}
