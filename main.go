package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/exam-archive/auth"
	"github.com/danielhkuo/exam-archive/catalog"
	"github.com/danielhkuo/exam-archive/cliparse"
	"github.com/danielhkuo/exam-archive/db"
	"github.com/danielhkuo/exam-archive/middleware"
	"github.com/danielhkuo/exam-archive/repository"
	"github.com/danielhkuo/exam-archive/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect and verify
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err, "type", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Apply migrations
	if err := db.Migrate(ctx, dbConn, cfg.DatabaseType); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	sessions := repository.NewSessionRepository(dbConn)
	if cfg.AdminEmail != "" {
		authService := auth.NewService(repository.NewAdminRepository(dbConn), sessions, cfg.JWTSecret, cfg.SessionTTL)
		if _, err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			slog.Error("admin seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Admin account ready", "email", cfg.AdminEmail)
	}
	if n, err := sessions.DeleteExpired(ctx, time.Now()); err != nil {
		slog.Warn("failed to prune sessions", "error", err)
	} else if n > 0 {
		slog.Info("Pruned expired sessions", "count", n)
	}

	// Load the catalog; a failed load still serves, with the error reported
	store := catalog.NewStore(repository.NewExamRepository(dbConn))
	if res := store.Load(ctx); !res.Success {
		slog.Error("catalog load failed", "error", res.Error)
	} else {
		slog.Info("Catalog loaded", "exams", store.Status().Count)
	}

	// Create router
	mux := router.NewRouter(dbConn, store, cfg)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(cfg.CORSOrigin)(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ctrlc
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
