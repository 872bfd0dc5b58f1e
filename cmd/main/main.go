package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"tabcompare-service/internal/config"
	serverhttp "tabcompare-service/server/http"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server")
	}
	logger.Info().Msg("bye")
}

// serve блокируется до отмены ctx, затем гасит сервер.
func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           serverhttp.NewRouter(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Int("maxUploadMB", cfg.MaxUploadMB).
		Float64("rateLimitRPS", cfg.RateLimitRPS).
		Bool("ignoreCase", cfg.Defaults.IgnoreCase).
		Bool("ignoreWhitespace", cfg.Defaults.IgnoreWhitespace).
		Float64("numericTolerance", cfg.Defaults.NumericTolerance).
		Msg("server starting")

	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("server shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
