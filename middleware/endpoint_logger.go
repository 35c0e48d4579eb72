package middleware

import (
	"fmt"
	"time"

	"github.com/ariebrainware/hospital-patient-manager/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger logs each HTTP request as an activity event. Events are
// also persisted when util.SetActivityLoggerDB was called during startup.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"path":        c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
			"query":       c.Request.URL.RawQuery,
			"client_ip":   c.ClientIP(),
		}
		if id := GetRequestID(c); id != "" {
			details["request_id"] = id
		}

		util.LogActivityEvent(util.ActivityEvent{
			EventType: util.EventEndpointCall,
			PatientID: c.Param("id"),
			Message:   fmt.Sprintf("%s %s -> %d", c.Request.Method, c.Request.URL.Path, status),
			Details:   details,
		})
	}
}
