package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gracebooks/api/internal/config"
	"github.com/gracebooks/api/internal/database"
	"github.com/gracebooks/api/internal/repository"
	"github.com/gracebooks/api/internal/router"
)

func main() {
	cfg := config.Load()

	ctx := context.Background()

	// Pick the storage backend
	var repo repository.AccountRepository
	if cfg.DatabaseURL == "" {
		log.Println("WARNING: DATABASE_URL not set, using in-memory repository")
		repo = repository.NewMemoryRepository()
	} else {
		log.Println("Connecting to PostgreSQL...")
		pool, err := database.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Unable to connect to database: %v", err)
		}
		defer pool.Close()

		if err := database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatalf("Failed to run database migrations: %v", err)
		}
		log.Println("PostgreSQL connected and migrations applied")

		repo = repository.NewPostgresRepository(pool)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router.New(repo),
	}

	go func() {
		log.Printf("accounting-service listening on :%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
