package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"fruitd/internal/httpapi"
)

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	log := stderrLogger(cfg)

	svc, clf := buildService(cfg, log)
	defer clf.Close()
	info := clf.Info()
	ev := log.Info().Str("mode", string(info.Mode))
	if info.Reason != "" {
		ev = ev.Str("reason", info.Reason)
	}
	ev.Msg("classifier ready")

	// base is canceled only if graceful shutdown runs out of time, which
	// aborts predictions still in flight.
	base, abort := context.WithCancel(context.Background())
	defer abort()

	mux := httpapi.NewMux(svc, httpapi.Options{
		Logger:         log,
		LogLevel:       httpapi.ParseLevel(cfg.LogLevel),
		MaxUploadBytes: cfg.MaxUploadBytes,
		CORS: httpapi.CORSOptions{
			Enabled:        cfg.CORS.Enabled,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: cfg.CORS.AllowedMethods,
			AllowedHeaders: cfg.CORS.AllowedHeaders,
		},
		Swagger:     cfg.Swagger,
		BaseContext: base,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("model_path", cfg.ModelPath).Msg("fruitd listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	select {
	case err, ok := <-errc:
		if ok {
			return err
		}
		return nil
	case <-stop.Done():
	}

	log.Info().Msg("shutting down")
	ctx, done := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
	defer done()
	if err := srv.Shutdown(ctx); err != nil {
		abort()
		log.Warn().Err(err).Msg("graceful shutdown error")
		return srv.Close()
	}
	return nil
}
