package api

import (
	"net/http"
	"time"

	chatapi "github.com/futig/outreach-backend/internal/api/chat"
	"github.com/futig/outreach-backend/internal/api/docs"
	"github.com/futig/outreach-backend/internal/api/middleware"
	sequenceapi "github.com/futig/outreach-backend/internal/api/sequence"
	"github.com/futig/outreach-backend/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	HandlerTimeout time.Duration
	ChatRPS        float64
	ChatBurst      int
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(
	chatHandler *chatapi.Handler,
	sequenceHandler *sequenceapi.Handler,
	cfg RouterConfig,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(cfg.HandlerTimeout))

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			response.Success(w, map[string]string{"status": "healthy"})
		})

		chatapi.RegisterRoutes(r, chatHandler, middleware.RateLimit(cfg.ChatRPS, cfg.ChatBurst))
		sequenceapi.RegisterRoutes(r, sequenceHandler)
	})

	return gzhttp.GzipHandler(r)
}
