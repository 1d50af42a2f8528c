package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	"github.com/yuriynekrasov/hizzle/pkg/logger"
	"github.com/yuriynekrasov/hizzle/pkg/rabbitmq/rabbitmq_common"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/adapters/listing_client"
	rabbitmq_adapter "github.com/yuriynekrasov/hizzle/services/offers-web/internal/adapters/rabbitmq"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/adapters/rest"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/bootstrap"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/configs"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/store"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/views"
)

const shutdownTimeout = 10 * time.Second

// App - основная структура приложения
type App struct {
	config *configs.Config
	logger port.LoggerPort

	root  *bootstrap.App
	store *store.Store

	connManager    *rabbitmq_common.ConnectionManager
	eventsConsumer *rabbitmq_adapter.OfferEventsConsumerAdapter

	fluentClient *fluent.Fluent
}

// NewApp создает и настраивает все компоненты приложения
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	baseLogger, fluentClient, err := logger.Setup(logger.SetupConfig{
		AppName:       appConfig.AppName,
		StdoutLevel:   appConfig.StdoutLogger.Level,
		FluentEnabled: appConfig.FluentBit.Enabled,
		FluentHost:    appConfig.FluentBit.Host,
		FluentPort:    appConfig.FluentBit.Port,
		FluentLevel:   appConfig.FluentBit.Level,
		FluentAsync:   appConfig.FluentBit.Async,
	})
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	app := &App{
		config:       appConfig,
		logger:       appLogger,
		fluentClient: fluentClient,
	}

	// Корень приложения: хранилище -> маршрутизатор -> HTTP-клиент
	rootView, err := views.Root()
	if err != nil {
		app.closeFluent()
		return nil, err
	}

	app.store = store.New(store.WithLogger(baseLogger))
	router := rest.NewRouter(rest.RouterConfig{AllowedOrigins: appConfig.CORS.AllowedOrigins}, baseLogger)
	listingClient := listing_client.NewListingServiceAPIClient(appConfig.ListingService.URL, appConfig.ListingService.Timeout)
	appLogger.Debug("Listing client initialized", port.Fields{"target_url": appConfig.ListingService.URL})

	app.root = bootstrap.CreateApp(rootView,
		bootstrap.WithLogger(baseLogger),
		bootstrap.WithHostConfig(bootstrap.HostConfig{
			Addr:              ":" + appConfig.Port,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		}),
	).
		Use(app.store).
		Use(router).
		Use(listingClient)

	if err := app.root.Err(); err != nil {
		app.closeFluent()
		return nil, fmt.Errorf("failed to assemble application root: %w", err)
	}

	if appConfig.RabbitMQ.Enabled {
		if err := app.setupEvents(baseLogger); err != nil {
			app.closeFluent()
			return nil, err
		}
	}

	return app, nil
}

func (a *App) setupEvents(baseLogger port.LoggerPort) error {
	rmqLogger := logger.NewKeyValueBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_connection_manager"}))

	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, rmqLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	consumer, err := rabbitmq_adapter.NewOfferEventsConsumerAdapter(
		rabbitmq_adapter.OfferEventsConsumerConfig(a.config.RabbitMQ.URL),
		a.store,
		baseLogger,
		connManager,
	)
	if err != nil {
		_ = connManager.Close()
		return fmt.Errorf("failed to create offer events consumer: %w", err)
	}

	a.connManager = connManager
	a.eventsConsumer = consumer
	return nil
}

// Run монтирует приложение и управляет его жизненным циклом
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.root.Mount(ctx, a.config.MountSelector); err != nil {
		a.logger.Error("Failed to mount application", err, port.Fields{"selector": a.config.MountSelector})
		a.closeFluent()
		return err
	}

	// начальная загрузка; при ошибке страница покажет ее, а данные подтянет /refresh
	go func() {
		if err := a.store.FetchOffers(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Warn("Initial offers load failed", port.Fields{"error": err.Error()})
		}
	}()

	var wg sync.WaitGroup
	if a.eventsConsumer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.eventsConsumer.Start(ctx); err != nil {
				a.logger.Error("Offer events consumer stopped with error", err, nil)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		a.logger.Debug("Application is shutting down...", port.Fields{"signal": sig.String()})
	case err := <-a.root.Host().Done():
		if err != nil {
			a.logger.Error("HTTP host failed", err, nil)
			runErr = err
		}
	}

	cancel()
	wg.Wait()

	a.shutdown()
	return runErr
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.root.Unmount(ctx); err != nil && !errors.Is(err, bootstrap.ErrNotMounted) {
		a.logger.Error("Application unmount failed", err, nil)
	}

	if a.eventsConsumer != nil {
		if err := a.eventsConsumer.Close(); err != nil {
			a.logger.Error("Failed to close offer events consumer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Failed to close RabbitMQ connection", err, nil)
		}
	}

	a.logger.Info("Application shut down gracefully.", nil)
	a.closeFluent()
}

func (a *App) closeFluent() {
	if a.fluentClient == nil {
		return
	}
	if err := a.fluentClient.Close(); err != nil {
		fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
	}
	a.fluentClient = nil
}
