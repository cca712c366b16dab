package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// LogApi emits one access-log line per request: status, latency, client,
// method and path. The error message is appended only when gin recorded one.
func LogApi() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		line := fmt.Sprintf("%s | %3d | %13v | %15s | %-7s %s",
			param.TimeStamp.Format(time.RFC3339),
			param.StatusCode,
			param.Latency,
			param.ClientIP,
			param.Method,
			param.Path,
		)
		if param.ErrorMessage != "" {
			line += " | " + param.ErrorMessage
		}
		return line + "\n"
	})
}
