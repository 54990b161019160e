package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/sqlchallenge/internal/api"
	"github.com/abhisek/sqlchallenge/internal/challenge"
	"github.com/abhisek/sqlchallenge/internal/schema"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve practice sessions over an HTTP JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		idle, _ := cmd.Flags().GetDuration("session-ttl")
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Addr()
		}
		return serve(cmd.Context(), addr, idle)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default from config)")
	serveCmd.Flags().Duration("session-ttl", 30*time.Minute, "Drop sessions idle for this long")
}

func serve(parent context.Context, addr string, idleTTL time.Duration) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env, err := openPracticeEnv(ctx, cfg)
	if err != nil {
		return err
	}
	defer env.Close()
	env.isolate = true

	sessions := api.NewSessions(func(topics []schema.Topic, categories []challenge.Category) *challenge.Session {
		return env.newSession(topics, categories)
	}, idleTTL)
	sessions.StartSweeper(ctx, time.Minute)

	server := api.NewServer(sessions, env.hintService(ctx))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 75 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "addr", addr)
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

	slog.Info("shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("sqlchallenge server stopped")
	return nil
}
