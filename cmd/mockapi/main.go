package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hanziflash/hanziflash/internal/config"
	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/mockapi"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	srv := mockapi.New(mockapi.WithRateLimit(cfg.MockAPIRateLimit, cfg.MockAPIBurst))

	httpServer := &http.Server{
		Addr:         cfg.MockAPIAddr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("mock API listening on %s", cfg.MockAPIAddr)
		if cfg.MockAPIRateLimit > 0 {
			log.Info("rate limiting enabled: %.1f req/s, burst %d", cfg.MockAPIRateLimit, cfg.MockAPIBurst)
		}
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, shutting down", sig)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error: %v", err)
	}
}
