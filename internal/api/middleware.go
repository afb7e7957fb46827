package api

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/BerylCAtieno/startup-idea-agent/internal/logger"
	"github.com/gin-gonic/gin"
)

const (
	AllowOrigin  = "*"
	AllowHeaders = "authorization, x-client-info, apikey, content-type"
)

// CORSMiddleware sets the CORS headers on every response and answers
// preflight requests with an empty 200.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", AllowOrigin)
		c.Header("Access-Control-Allow-Headers", AllowHeaders)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

// maxLoggedBody caps how much of a request body is echoed at debug level.
const maxLoggedBody = 4 << 10

// RequestLoggingMiddleware logs every request with status and latency.
// At debug level it also logs the raw JSON body.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if logger.LevelString() == "debug" && c.Request.Body != nil && c.ContentType() == gin.MIMEJSON {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				logged := bodyBytes
				if len(logged) > maxLoggedBody {
					logged = logged[:maxLoggedBody]
				}
				logger.Debugf("[%s] %s body=%s", c.Request.Method, c.Request.URL.Path, string(logged))
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}

		c.Next()

		logger.Infof("[%s] %s %d in %v (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}
