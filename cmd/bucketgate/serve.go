package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/avelkon/bucketgate"
	"github.com/avelkon/bucketgate/config"
	gatehttp "github.com/avelkon/bucketgate/http"
	"github.com/avelkon/bucketgate/identity"
	"github.com/avelkon/bucketgate/s3store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the bucketgate HTTP server.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Verifier and store clients are built once here and shared by all
	// requests.
	verifier, err := newVerifier(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create verifier: %w", err)
	}

	store, err := s3store.New(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("create s3 store: %w", err)
	}

	service, err := bucketgate.NewService(store,
		bucketgate.WithUploadTTL(time.Duration(cfg.URLs.UploadTTL)*time.Second),
		bucketgate.WithDownloadTTL(time.Duration(cfg.URLs.DownloadTTL)*time.Second),
		bucketgate.WithStrictNames(cfg.Server.StrictNames),
	)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	handlerConfig := gatehttp.HandlerConfig{
		Verifier:      verifier,
		VerifyTimeout: time.Duration(cfg.Server.VerifyTimeout) * time.Second,
		CORS:          cfg.CORS,
	}
	handler := gatehttp.NewHandler(&handlerConfig, service)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"auth_mode", cfg.Auth.Mode,
		"bucket", cfg.S3.Bucket,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

func newVerifier(ctx context.Context, cfg *config.Config) (bucketgate.TokenVerifier, error) {
	switch cfg.Auth.Mode {
	case "hmac":
		return identity.NewHMACVerifier([]byte(cfg.Auth.HMAC.Secret))
	default:
		return identity.NewOIDCVerifier(ctx, cfg.Auth.OIDC)
	}
}
