// Package main runs the in-memory storefront test double.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gra1gkolodziejczyk/shop-ta-board/internal/mockshop"
)

func main() {
	var (
		addr          = flag.String("addr", ":4000", "listen address")
		adminEmail    = flag.String("admin-email", "admin@shoptaboard.local", "admin account email")
		adminPassword = flag.String("admin-password", "letmegrind", "admin account password")
		noSeed        = flag.Bool("no-seed", false, "start with an empty catalogue")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if os.Getenv("DEBUG") == "true" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	store, err := mockshop.NewStore(*adminEmail, *adminPassword)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}
	if !*noSeed {
		store.Seed(mockshop.DefaultCatalogue())
	}

	server := mockshop.NewServer(store, mockshop.WithLogger(logger))

	srv := &http.Server{
		Addr:         *addr,
		Handler:      server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  time.Minute,
	}

	go func() {
		logger.Info("Mock storefront listening",
			slog.String("addr", srv.Addr),
			slog.String("admin_email", *adminEmail),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutting down", slog.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	fmt.Println("Server stopped")
}
