package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ebaylookup/backend/config"
	httpDelivery "github.com/ebaylookup/backend/internal/delivery/http"
	"github.com/ebaylookup/backend/internal/infrastructure/barcode"
	"github.com/ebaylookup/backend/internal/infrastructure/ebay"
	"github.com/ebaylookup/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting eBay Lookup Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	ebayClient := ebay.NewClient(ebay.Options{
		BaseURL:   cfg.Ebay.BaseURL,
		Timeout:   cfg.Ebay.Timeout,
		UserAgent: cfg.Ebay.UserAgent,
		Selectors: cfg.Ebay.Selectors,
	})
	if cfg.Ebay.Debug || cfg.Server.Environment == "development" {
		ebayClient.SetDebug(true)
		log.Printf("eBay client debug mode enabled")
	}
	log.Printf("eBay: %s (timeout %s, items %q)", cfg.Ebay.BaseURL, cfg.Ebay.Timeout, cfg.Ebay.Selectors.Items)

	decoder := barcode.NewDecoder(barcode.Options{
		MaxBytes: cfg.Upload.MaxBytes,
		TempDir:  cfg.Upload.TempDir,
	})

	// Initialize usecase layer
	lookupService := usecase.NewLookupService(
		ebayClient,
		decoder,
		usecase.LookupServiceConfig{
			DefaultLimit:       cfg.Search.DefaultLimit,
			EnableDebugLogging: cfg.Search.EnableDebugLogging,
		},
	)

	log.Printf("Search: default limit=%d, debug=%v", lookupService.DefaultLimit(), cfg.Search.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(lookupService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
