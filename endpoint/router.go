package endpoint

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ariebrainware/hospital-patient-manager/config"
	"github.com/ariebrainware/hospital-patient-manager/manager"
	"github.com/ariebrainware/hospital-patient-manager/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine serving m.
func SetupRouter(m *manager.Manager, cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.EndpointCallLogger())
	router.Use(middleware.RateLimiter(middleware.RateLimitConfig{Limit: cfg.RateLimit, Window: time.Minute}))
	router.Use(middleware.ManagerMiddleware(m))

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	router.GET("/patient", ListPatients)
	router.POST("/patient", CreatePatient)
	router.GET("/patient/:id", GetPatientInfo)
	router.PATCH("/patient/:id", UpdatePatient)
	router.DELETE("/patient/:id", DeletePatient)
	router.POST("/patient/:id/discharge", DischargePatient)

	router.GET("/statistics", GetStatistics)
	router.GET("/beds", GetBedAvailability)
	router.POST("/export", ExportData)

	return router
}
