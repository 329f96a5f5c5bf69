package main

import (
	"donation-gateway/config"
	"donation-gateway/db"
	appHttp "donation-gateway/http"
	"donation-gateway/http/handlers"
	"donation-gateway/logger"
	"donation-gateway/services"
	"log"
	netHttp "net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	// Load configuration
	config.LoadConfig()

	// Initialize Kafka producer (non-fatal)
	services.InitProducer()

	// Initialize database
	if err := db.InitDB(); err != nil {
		logger.Fatal("Error initializing database: %v", err)
	}

	// Wire services
	tokens := services.NewTokenService()
	charges := services.NewChargeService(tokens)
	reconciler := services.NewReconciler(services.NewFonnteSender(), services.NewSMTPMailer())
	handlers.Init(charges, tokens, reconciler)

	// Setup routes
	appHttp.SetupRoutes()

	// Set up graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := ":" + config.AppConfig.AppPort
		logger.Info("Server starting on %s (Pivot env: %s)", addr, config.AppConfig.PivotEnv)
		log.Fatal(netHttp.ListenAndServe(addr, nil))
	}()

	// Wait for shutdown signal
	<-sigChan
	logger.Info("Shutdown signal received, closing Kafka producer...")

	if err := services.Close(); err != nil {
		logger.Error("Error closing Kafka producer: %v", err)
	}

	logger.Info("Server shutdown complete")
}
