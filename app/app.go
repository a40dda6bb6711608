// File: app/app.go
package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/config"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/handler"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/logger"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/repository"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/router"
	"github.com/rajalakshmi-growphil/zoho-crm-integration/service"
)

func Run() {
	// A local .env is optional; in production the variables come from the
	// environment directly.
	_ = godotenv.Load()

	logger.Init()
	logger.Log.Info("Logger initialized")

	cfg, err := config.Load(".")
	if err != nil {
		logger.Log.Fatalf("Error loading configuration: %v", err)
	}
	logger.Log.Info("Configuration loaded successfully")

	if cfg.Zoho.ClientID == "" || cfg.Zoho.ClientSecret == "" {
		logger.Log.Warn("Zoho client credentials are not set; token exchanges will fail")
	}

	// --- Wiring All Layers Together ---
	httpClient := &http.Client{Timeout: 30 * time.Second}
	tokenStore := repository.NewFileTokenStore(cfg.TokenFile)

	authService := service.NewAuthService(cfg, tokenStore, httpClient)
	schemaService := service.NewSchemaService(httpClient)
	recordService := service.NewRecordService(authService, schemaService, tokenStore, httpClient)

	authHandler := handler.NewAuthHandler(authService)
	recordHandler := handler.NewRecordHandler(recordService)

	r := router.NewRouter(authHandler, recordHandler)

	// --- Start the Server with Graceful Shutdown ---
	port := cfg.Server.Port
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Log.Infof("Server starting on port :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Warn("Shutdown signal received. Starting graceful shutdown...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Log.Info("Server exited properly")
}

// TestApp bundles the pieces integration tests need to exercise the full
// router against fake provider servers.
type TestApp struct {
	Router http.Handler
	Store  repository.ITokenStore
}

// NewTestApp wires the full stack from an explicit config and HTTP client,
// skipping the server and signal handling.
func NewTestApp(cfg *config.Config, client *http.Client) *TestApp {
	tokenStore := repository.NewFileTokenStore(cfg.TokenFile)

	authService := service.NewAuthService(cfg, tokenStore, client)
	schemaService := service.NewSchemaService(client)
	recordService := service.NewRecordService(authService, schemaService, tokenStore, client)

	authHandler := handler.NewAuthHandler(authService)
	recordHandler := handler.NewRecordHandler(recordService)

	return &TestApp{
		Router: router.NewRouter(authHandler, recordHandler),
		Store:  tokenStore,
	}
}
