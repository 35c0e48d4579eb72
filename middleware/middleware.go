package middleware

import (
	"net/http"
	"sync"

	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/gin-gonic/gin"
)

const managerKey = "manager"

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ManagerMiddleware exposes m to handlers. The Manager is single-threaded, so
// requests holding it run one at a time.
func ManagerMiddleware(m *manager.Manager) gin.HandlerFunc {
	var mu sync.Mutex
	return func(c *gin.Context) {
		mu.Lock()
		defer mu.Unlock()
		c.Set(managerKey, m)
		c.Next()
	}
}

// GetManager returns the Manager set by ManagerMiddleware, or nil.
func GetManager(c *gin.Context) *manager.Manager {
	if v, ok := c.Get(managerKey); ok {
		if m, ok := v.(*manager.Manager); ok {
			return m
		}
	}
	return nil
}
