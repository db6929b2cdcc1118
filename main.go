package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/giygas/clinpharm-api/config"
	"github.com/giygas/clinpharm-api/data"
	"github.com/giygas/clinpharm-api/logging"
	"github.com/giygas/clinpharm-api/metrics"
	"github.com/giygas/clinpharm-api/reference"
	"github.com/giygas/clinpharm-api/scheduler"
	"github.com/giygas/clinpharm-api/server"
	"github.com/joho/godotenv"
)

// loadReferenceTables returns the built-in tables, or the overlay file
// named by REFERENCE_DATA_FILE, and the source label to publish with them
func loadReferenceTables(cfg *config.Config) (*reference.Tables, string, error) {
	if cfg.ReferenceDataFile == "" {
		return reference.Default(), "builtin", nil
	}

	tables, err := reference.LoadFile(cfg.ReferenceDataFile)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load reference data: %w", err)
	}
	return tables, cfg.ReferenceDataFile, nil
}

// loadEnv reads .env from the working directory, falling back to the
// executable's directory
func loadEnv() error {
	if err := godotenv.Load(); err == nil {
		return nil
	}

	ex, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	exPath := filepath.Dir(ex)
	if err := os.Chdir(exPath); err != nil {
		return fmt.Errorf("failed to change directory: %w", err)
	}

	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()
	return nil
}

func main() {
	if err := loadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	loggingService := logging.InitLogger(logging.Options{
		LogDir:         cfg.LogDir,
		Env:            cfg.Env,
		Level:          cfg.LogLevel,
		RetentionWeeks: cfg.LogRetentionWeeks,
		MaxFileSize:    cfg.MaxLogFileSize,
		Verbose:        cfg.LogVerbose,
	})
	defer loggingService.Close()

	logging.Info("Configuration loaded",
		"env", cfg.Env.String(),
		"address", cfg.Address,
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
	)

	tables, source, err := loadReferenceTables(cfg)
	if err != nil {
		logging.Error("Startup failed", "error", err)
		os.Exit(1)
	}

	dataContainer := data.NewDataContainer()
	dataContainer.Publish(tables, source)
	dataContainer.SetServerStartTime(time.Now())
	metrics.SetReferenceCounts(tables.Counts())
	logging.Info("Reference tables published", "source", source, "tables", tables.Counts())

	srv := server.NewServer(cfg, dataContainer)

	sched := scheduler.NewScheduler(dataContainer, srv.RateLimiter(), srv.HealthChecker())
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logging.Error("Server failed to start", "error", err)
			sched.Stop()
			loggingService.Close()
			os.Exit(1)
		}
	}

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}
}
