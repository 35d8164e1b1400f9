package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/lexirank/internal/api"
	"github.com/abhisek/lexirank/internal/config"
	"github.com/abhisek/lexirank/internal/scoring"
	"github.com/abhisek/lexirank/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the scoring HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("config", "lexirank.yaml", "Path to YAML config file (optional)")
	serveCmd.Flags().String("host", "", "Listen host (overrides config)")
	serveCmd.Flags().Int("port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if h, _ := cmd.Flags().GetString("host"); h != "" {
		cfg.Server.Host = h
	}
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		cfg.Server.Port = p
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Database.Path = p
	}

	logger := config.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	dbPath := cfg.Database.Path
	if dbPath == "" {
		if dbPath, err = store.DefaultDBPath(); err != nil {
			return err
		}
	} else if err := store.EnsureDir(dbPath); err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("database opened", "path", dbPath)

	svc := scoring.NewService(st.ResultRepo(), logger)
	server := api.NewServer(cfg.Server, svc, logger)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return err
	}
	logger.Info("lexirank stopped")
	return nil
}
