package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/domain"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(httpPort string,
	offersHandlers *OffersHandler,
	propertiesHandlers *PropertiesHandler,
	authMiddleware *AuthMiddleware,
	baseLogger port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + httpPort,
			Handler:           newRouter(offersHandlers, propertiesHandlers, authMiddleware, baseLogger),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: baseLogger,
	}
}

// newRouter собирает маршруты; при authMiddleware == nil запись не защищена.
func newRouter(offersHandlers *OffersHandler, propertiesHandlers *PropertiesHandler, authMiddleware *AuthMiddleware, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, rest_common.LoggerMiddleware(baseLogger), middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		rest_common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/offers", offersHandlers.ListOffers)
		r.Get("/offers/{offerID}", offersHandlers.GetOffer)

		r.Group(func(r chi.Router) {
			if authMiddleware != nil {
				r.Use(authMiddleware.Authenticate, authMiddleware.RequireRole(domain.RoleAdmin))
			}
			r.Post("/offers", offersHandlers.CreateOffer)
			r.Delete("/offers/{offerID}", offersHandlers.DeleteOffer)
		})

		r.Get("/order-options", offersHandlers.ListOrderOptions)
		r.Get("/properties", propertiesHandlers.ListProperties)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rest_common.WriteJSONError(w, http.StatusNotFound, "Resource not found")
	})

	return r
}

// Start блокируется до остановки сервера.
func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
