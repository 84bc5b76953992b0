// cmd/gateway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rental-gateway/internal/clients/centercom"
	"rental-gateway/internal/clients/rento"
	"rental-gateway/internal/clients/sheety"
	"rental-gateway/internal/common/config"
	"rental-gateway/internal/common/logger"
	"rental-gateway/internal/common/observability"
	"rental-gateway/internal/gateway/billing"
	"rental-gateway/internal/gateway/escalation"
	"rental-gateway/internal/gateway/httpapi"
	"rental-gateway/internal/gateway/inventory"
	"rental-gateway/internal/gateway/servicedesk"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.NewStructured("info", "json")
		fallback.WithError(err).Error("Failed to load configuration", nil)
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	log.Info("Starting rental gateway", map[string]interface{}{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"address":     cfg.Server.Address,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	rentoClient := rento.NewClient(cfg.Upstreams.Rento)
	sheetyClient := sheety.NewClient(cfg.Upstreams.Sheety)
	centercomClient := centercom.NewClient(cfg.Upstreams.Centercom)

	handlers := httpapi.Handlers{
		Billing:     billing.NewHandler(billing.NewService(rentoClient, log), log),
		Escalation:  escalation.NewHandler(escalation.NewService(cfg.Escalation, sheetyClient, centercomClient, log), log),
		ServiceDesk: servicedesk.NewHandler(servicedesk.NewService(rentoClient, log), log),
		Inventory:   inventory.NewHandler(inventory.NewService(rentoClient, log), log),
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	httpapi.SetupRoutes(engine, handlers, log, obs, cfg.Server.MaxBodyBytes)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      engine,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("HTTP server failed", nil)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received, draining connections", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed", nil)
	}
	log.Info("Gateway stopped", nil)
}
