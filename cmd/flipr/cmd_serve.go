package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"flipr/internal/api"
	"flipr/internal/auth"
	"flipr/internal/config"
	"flipr/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the content API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.InsecureSecret() {
			logger.Warn("FLIPR_JWT_SECRET is unset; using the built-in development secret (do not run in production)")
		}

		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Explicit bootstrap step: seed the admin identity once, before
		// accepting requests.
		if err := auth.EnsureAdmin(ctx, st, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
			return err
		}

		a := auth.New(st, auth.NewTokens(cfg.JWTSecret), logger)
		server := &http.Server{
			Addr:    cfg.Addr,
			Handler: api.NewServer(cfg, st, a, logger).Router(),
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("server running",
				zap.String("addr", cfg.Addr),
				zap.String("db", st.Path()),
				zap.String("uploads", cfg.UploadDir))
			errCh <- server.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
