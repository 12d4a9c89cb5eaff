package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/voxdo/voxdo/internal/config"
	"github.com/voxdo/voxdo/internal/controlplane"
	"github.com/voxdo/voxdo/internal/history"
	"github.com/voxdo/voxdo/internal/reminder"
	"github.com/voxdo/voxdo/internal/store"
)

var (
	listenAddr string
	dbPath     string
	configPath string
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start the voxdo daemon",
	Long:  `Starts the voxdo daemon which provides the HTTP API for voice command processing and runs the due-task reminder loop.`,
	RunE:  runDaemon,
}

func init() {
	daemonCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address for the API server (overrides config)")
	daemonCmd.Flags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides config)")
	daemonCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ~/.voxdo/config.toml)")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.Listen = listenAddr
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "voxdo",
	})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}

	lead, err := time.ParseDuration(cfg.ReminderLead)
	if err != nil {
		logger.Warn("invalid reminder_lead, using 30m", "value", cfg.ReminderLead)
		lead = 30 * time.Minute
	}

	// Initialize store
	s, err := store.New(cfg.DBPath)
	if err != nil {
		return err
	}

	// Create service and server
	recorder := history.NewRecorder(s)
	service := controlplane.NewService(s, recorder)
	server := controlplane.NewServer(service, cfg.Listen, logger)

	// Start the reminder loop
	rem := reminder.New(s, recorder, logger, lead)
	rem.Start()
	defer rem.Stop()

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in goroutine
	go func() {
		err := server.Start()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", "signal", sig)
	case err := <-serverErr:
		if err != nil {
			logger.Error("server error", "err", err)
			s.Close()
			return err
		}
	}

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
	if err := s.Close(); err != nil {
		logger.Error("database close error", "err", err)
	}

	logger.Info("shutdown complete")
	return nil
}
