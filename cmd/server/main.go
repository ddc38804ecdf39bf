// Command server runs the Fach Nmchi API.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata" // Africa/Casablanca on hosts without a zoneinfo database

	"fachnmchi/internal/config"
	"fachnmchi/internal/middleware"
	"fachnmchi/internal/observability"
	"fachnmchi/internal/server"

	"github.com/joho/godotenv"
)

// @title Fach Nmchi API
// @version 1.0
// @description Casablanca commute community: ranked question feed, trip alternatives, stations and alerts.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https

func main() {
	// A .env file is optional; real environment variables win.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Ignoring .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	middleware.Logger = middleware.NewLogger(cfg.Env)

	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "fachnmchi-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   1,
	})
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	if err := srv.Load(loadCtx); err != nil {
		cancelLoad()
		log.Fatalf("Failed to load feed: %v", err)
	}
	cancelLoad()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("Tracer shutdown error: %v", err)
		}
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
