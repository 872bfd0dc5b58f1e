package serverhttp

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	cmpHnd "tabcompare-service/internal/compare/handler"
	"tabcompare-service/internal/config"
	"tabcompare-service/internal/middleware"
	"tabcompare-service/server/http/handlers"
)

const gzipMinSize = 1024

func NewRouter(cfg config.Config, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// порядок важен: recover -> requestID -> logging -> cors -> limit -> rate
	r.Use(middleware.Recover(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS(cfg.AllowOrigins))
	r.Use(middleware.LimitBytes(int64(cfg.MaxUploadMB) * 1024 * 1024))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// health-check
	r.Get("/health", handlers.Health)

	// JSON-ответы сжимаем, xlsx отдаём как есть
	r.With(middleware.Gzip(gzipMinSize)).Post("/sheets", cmpHnd.Sheets(logger))
	r.With(middleware.Gzip(gzipMinSize)).Post("/compare", cmpHnd.Compare(cfg, logger))
	r.Post("/compare/export", cmpHnd.Export(cfg, logger))

	return r
}
