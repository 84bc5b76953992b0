// internal/gateway/httpapi/router.go
package httpapi

import (
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/common/observability"
	"rental-gateway/internal/gateway/billing"
	"rental-gateway/internal/gateway/escalation"
	"rental-gateway/internal/gateway/inventory"
	"rental-gateway/internal/gateway/servicedesk"
)

type Handlers struct {
	Billing     *billing.Handler
	Escalation  *escalation.Handler
	ServiceDesk *servicedesk.Handler
	Inventory   *inventory.Handler
}

// SetupRoutes wires the four gateway routes plus health and metrics.
// Escalation rows and ticket bodies are small; maxBodyBytes guards
// against oversized payloads.
func SetupRoutes(r *gin.Engine, h Handlers, log logger.Logger, obs *observability.Observability, maxBodyBytes int64) {
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(Instrument(obs))
	r.Use(SecurityHeaders())
	r.Use(RequestSizeLimiter(maxBodyBytes))
	r.Use(CORS())

	api := r.Group("/api")
	{
		api.GET("/billingAndPayments", h.Billing.Handle)
		api.POST("/billingAndPayments", h.Billing.Handle)

		api.POST("/escalation", h.Escalation.Handle)

		api.GET("/orderServiceManagement", h.ServiceDesk.HandleGet)
		api.POST("/orderServiceManagement", h.ServiceDesk.HandlePost)

		api.GET("/productInventory", h.Inventory.Handle)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	// pprof registers itself on the default mux at import time.
	r.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
}
