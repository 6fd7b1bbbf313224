package server

import (
	"net/http"

	"github.com/coinsage/coinsage/internal/agent"
	"github.com/coinsage/coinsage/internal/handler"
	"github.com/coinsage/coinsage/internal/market"
	"github.com/coinsage/coinsage/internal/middleware"
	"github.com/coinsage/coinsage/internal/tools"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func (s *Server) setupRoutes(m *market.Client, a agent.Agent) http.Handler {
	cfg := s.cfg

	log.Info().
		Bool("auth_enabled", cfg.EnableAuth && len(cfg.APIKeys) > 0).
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("service configuration")

	if cfg.EnableAuth && len(cfg.APIKeys) == 0 {
		log.Warn().Msg("WARNING: auth enabled but no API keys configured - all API requests will be rejected")
	}

	registry := tools.Registry(m)

	healthH := handler.NewHealthHandler(m)
	marketH := handler.NewMarketHandler(m)
	chatH := handler.NewChatHandler(a, registry)

	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(chiMiddleware.RealIP)

	// Public routes
	r.Get("/health", healthH.Health)
	r.Get("/", healthH.Health)

	apiMiddleware := []func(http.Handler) http.Handler{
		middleware.RateLimit(cfg.RateLimitPerMinute),
	}
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		apiMiddleware = append(apiMiddleware, middleware.Auth(cfg.APIKeys, cfg.APIKeyHeader))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range apiMiddleware {
			r.Use(mw)
		}

		r.Route(cfg.APIPrefix, func(r chi.Router) {
			r.Post("/chat", chatH.Chat)

			r.Route("/market", func(r chi.Router) {
				r.Get("/price/{symbol}", marketH.Price)
				r.Get("/price/{symbol}/{date}", marketH.PriceOn)
				r.Get("/movers", marketH.Movers)
				r.Get("/fear-greed", marketH.FearGreed)
				r.Get("/fear-greed/{date}", marketH.FearGreedOn)
			})
		})
	})

	return r
}
