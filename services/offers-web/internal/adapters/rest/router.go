package rest

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/yuriynekrasov/hizzle/pkg/rest_common"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
)

// RouterConfig - параметры маршрутизатора.
type RouterConfig struct {
	AllowedOrigins    []string
	KeepAliveInterval time.Duration // период комментариев keep-alive в SSE
}

// Router - плагин маршрутизации: сопоставляет пути представлениям
// и JSON API и строит обработчик смонтированного приложения.
type Router struct {
	cfg    RouterConfig
	logger port.LoggerPort

	store       *store.Store
	pages       *template.Template
	notifier    *SSENotifier
	unsubscribe func()
}

func NewRouter(cfg RouterConfig, baseLogger port.LoggerPort) *Router {
	if cfg.KeepAliveInterval <= 0 {
		cfg.KeepAliveInterval = 15 * time.Second
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &Router{
		cfg:    cfg,
		logger: baseLogger,
	}
}

func (rt *Router) Kind() bootstrap.PluginKind {
	return bootstrap.KindRouter
}

// Install требует уже подключенное хранилище: представления читают из него.
func (rt *Router) Install(app *bootstrap.App) error {
	if rt.store != nil {
		return fmt.Errorf("%w: router", bootstrap.ErrAlreadyInstalled)
	}

	st, err := store.FromGlobals(app.Globals())
	if err != nil {
		return fmt.Errorf("router requires a store: %w", err)
	}

	pages := app.RootView().Pages
	if pages == nil {
		return fmt.Errorf("router: root view '%s' has no page templates", app.RootView().Name)
	}

	if err := app.Globals().Provide(bootstrap.KindRouter, rt); err != nil {
		return err
	}

	rt.store = st
	rt.pages = pages
	rt.notifier = NewSSENotifier(rt.logger)
	rt.unsubscribe = st.Subscribe(rt.notifier.Notify)
	return nil
}

// Handler строит chi-маршрутизатор смонтированного приложения.
func (rt *Router) Handler(renderer *bootstrap.Renderer) http.Handler {
	views := &ViewHandler{store: rt.store, pages: rt.pages, renderer: renderer}
	api := &APIHandler{store: rt.store}
	events := &EventsHandler{notifier: rt.notifier, keepAlive: rt.cfg.KeepAliveInterval}

	r := chi.NewRouter()

	r.Use(
		middleware.RealIP,
		rest_common.LoggerMiddleware(rt.logger),
		middleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins:   rt.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Trace-ID"},
			ExposedHeaders:   []string{"X-Trace-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		rest_common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", views.OffersPage)
	r.Get("/offers/{offerID}", views.OfferPage)
	r.Get("/properties", views.PropertiesPage)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/offers", api.ListOffers)
		r.Get("/offers/{offerID}", api.GetOffer)
		r.Get("/properties", api.ListProperties)
		r.Get("/order-options", api.ListOrderOptions)
		r.Put("/order", api.SetOrder)
		r.Post("/refresh", api.Refresh)
		r.Get("/events", events.Subscribe)
	})

	r.NotFound(views.NotFoundPage)

	return r
}

// Close отписывается от хранилища и останавливает рассылку событий.
func (rt *Router) Close() error {
	if rt.unsubscribe != nil {
		rt.unsubscribe()
	}
	if rt.notifier != nil {
		rt.notifier.Close()
	}
	return nil
}
