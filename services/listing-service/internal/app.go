package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/logger"
	"github.com/yuriynekrasov/hizzle/pkg/postgres"
	"github.com/yuriynekrasov/hizzle/pkg/rabbitmq/rabbitmq_common"
	"github.com/yuriynekrasov/hizzle/pkg/rabbitmq/rabbitmq_producer"
	token_adapter "github.com/yuriynekrasov/hizzle/services/listing-service/internal/adapters/jwt"
	postgres_adapter "github.com/yuriynekrasov/hizzle/services/listing-service/internal/adapters/postgres"
	rabbitmq_adapter "github.com/yuriynekrasov/hizzle/services/listing-service/internal/adapters/rabbitmq"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/adapters/rest"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/configs"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/usecase"
	"github.com/yuriynekrasov/hizzle/services/listing-service/migrations"
)

const shutdownTimeout = 10 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher
}

// NewApp создает новый экземпляр приложения и связывает все зависимости.
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

	ctx := context.Background()
	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL:     appConfig.Database.URL,
		ApplicationName: appConfig.AppName,
		MaxConns:        appConfig.Database.MaxConns,
		MaxConnLifetime: appConfig.Database.MaxConnLifetime,
		ConnectAttempts: appConfig.Database.ConnectAttempts,
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		app.closeFluent()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	app.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if appConfig.Database.AutoMigrate {
		if err := postgres_adapter.ApplyMigrations(ctx, dbPool, migrations.FS); err != nil {
			appLogger.Error("Failed to apply migrations", err, nil)
			app.release()
			return nil, err
		}
		appLogger.Info("Database schema is up to date.", nil)
	}

	offerRepository, err := postgres_adapter.NewPostgresOfferRepository(dbPool)
	if err != nil {
		app.release()
		return nil, fmt.Errorf("failed to create offer repository: %w", err)
	}

	offerEvents, err := app.setupEvents(baseLogger)
	if err != nil {
		app.release()
		return nil, err
	}

	listOffersUseCase := usecase.NewListOffersUseCase(offerRepository)
	getOfferUseCase := usecase.NewGetOfferUseCase(offerRepository)
	publishOfferUseCase := usecase.NewPublishOfferUseCase(offerRepository, offerEvents)
	withdrawOfferUseCase := usecase.NewWithdrawOfferUseCase(offerRepository, offerEvents)
	listPropertiesUseCase := usecase.NewListPropertiesUseCase(offerRepository)
	appLogger.Info("All use cases initialized.", nil)

	offersHandlers := rest.NewOffersHandler(listOffersUseCase, getOfferUseCase, publishOfferUseCase, withdrawOfferUseCase)
	propertiesHandlers := rest.NewPropertiesHandler(listPropertiesUseCase)

	var authMiddleware *rest.AuthMiddleware
	if appConfig.Auth.JWTSecret != "" {
		tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
		if err != nil {
			app.release()
			return nil, err
		}
		authMiddleware = rest.NewAuthMiddleware(tokenService)
	} else {
		appLogger.Warn("JWT_SECRET is not set, write endpoints are not protected", nil)
	}

	app.apiServer = rest.NewServer(appConfig.Port, offersHandlers, propertiesHandlers, authMiddleware, baseLogger)

	return app, nil
}

// setupEvents подключает издателя событий; без RABBITMQ_URL события не отправляются.
func (a *App) setupEvents(baseLogger port.LoggerPort) (port.OfferEventsPort, error) {
	if a.config.RabbitMQ.URL == "" {
		a.logger.Warn("RABBITMQ_URL is not set, offer events are disabled", nil)
		return rabbitmq_adapter.NewNoopOfferEventsPublisher(baseLogger), nil
	}

	connManagerBridge := logger.NewKeyValueBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             contracts.OffersExchange,
		ExchangeType:             contracts.OffersExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   logger.NewKeyValueBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.eventsProducer = producer
	a.logger.Info("RabbitMQ Event Producer initialized.", nil)

	return rabbitmq_adapter.NewOfferEventsPublisher(producer)
}

// Run запускает REST сервер и ждет сигнала завершения
func (a *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.apiServer.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-quit:
		a.logger.Info("Application is shutting down...", port.Fields{"signal": sig.String()})
	case err := <-serverErr:
		if err != nil {
			a.logger.Error("REST server failed", err, nil)
			runErr = err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(ctx); err != nil {
		a.logger.Error("Failed to stop REST server gracefully", err, nil)
	}

	a.release()
	a.logger.Info("Application shut down gracefully.", nil)
	return runErr
}

// release закрывает ресурсы в обратном порядке создания.
func (a *App) release() {
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Failed to close event producer", err, nil)
		}
		a.eventsProducer = nil
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Failed to close RabbitMQ connection", err, nil)
		}
		a.connManager = nil
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
	}
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
