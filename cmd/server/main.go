package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventkit/signup-reconciler/internal/api"
	"github.com/eventkit/signup-reconciler/internal/config"
	"github.com/eventkit/signup-reconciler/internal/dates"
	"github.com/eventkit/signup-reconciler/internal/fetch"
	"github.com/eventkit/signup-reconciler/internal/reconcile"
	"github.com/eventkit/signup-reconciler/internal/repository/postgres"

	_ "github.com/lib/pq" // PostgreSQL driver
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("DATABASE_URL") != "" {
		log.Println("[config] DATABASE_URL env override active")
	}

	if cfg.Database.URL == "" {
		log.Fatal("No database configured: set database.url or DATABASE_URL")
	}
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("Database unreachable: %v", err)
	}
	log.Println("[db] Connected to roster database")

	fetcher := fetch.NewClient(
		time.Duration(cfg.Fetch.TimeoutSeconds)*time.Second,
		int64(cfg.Fetch.MaxResponseMB)<<20,
	)
	engine := reconcile.NewEngine(reconcile.Config{MaxSuggestions: cfg.Reconcile.MaxSuggestions})
	handlers := api.NewHandlers(
		postgres.NewRosterRepo(db),
		fetcher,
		engine,
		dates.ParseMode(cfg.Reconcile.DOBMode),
	)
	handlers.SetDB(db)
	server := api.NewServer(cfg.Server, handlers)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Starting server on %s", addr)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
