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

	"github.com/zack-schrag/treeline-goals/internal/adapter/httpapi"
	"github.com/zack-schrag/treeline-goals/internal/adapter/repository/postgres"
	"github.com/zack-schrag/treeline-goals/internal/usecase/overview"
	"github.com/zack-schrag/treeline-goals/internal/usecase/tracker"
)

const (
	defaultAPIToken = "dev-token"
	defaultHTTPAddr = ":8080"
)

func main() {
	// 1. Setup Database
	dbConnStr := os.Getenv("DB_CONN_STR")
	if dbConnStr == "" {
		// If explicit string is missing, build it from individual vars (Docker friendly)
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost" // Default for local run without docker
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "treeline"
		}

		dbConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	}

	db, err := postgres.NewDB(dbConnStr)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	ctx := context.Background()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// 2. Initialize Repositories (Postgres)
	accountRepo := postgres.NewAccountRepository(db)
	goalRepo := postgres.NewGoalRepository(db)

	// 3. Initialize Services (Use Cases)
	trackerService := tracker.NewService(accountRepo, goalRepo)
	overviewService := overview.NewService(accountRepo, goalRepo)

	// 4. Start HTTP Server
	apiToken := os.Getenv("API_TOKEN")
	if apiToken == "" {
		apiToken = defaultAPIToken
	}

	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		httpAddr = defaultHTTPAddr
	}

	apiServer := httpapi.NewServer(trackerService, overviewService)
	srv := &http.Server{
		Addr:    httpAddr,
		Handler: apiServer.Router(apiToken),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(srv)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	log.Printf("Received signal: %v. Shutting down gracefully...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("HTTP server stopped")
}
