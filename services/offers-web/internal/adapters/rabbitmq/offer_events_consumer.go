package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/pkg/logger"
	"github.com/yuriynekrasov/hizzle/pkg/rabbitmq/rabbitmq_common"
	"github.com/yuriynekrasov/hizzle/pkg/rabbitmq/rabbitmq_consumer"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/constants"
	"github.com/yuriynekrasov/hizzle/services/offers-web/internal/core/port"
)

// OfferEventsConsumerAdapter применяет события listing-service к хранилищу.
type OfferEventsConsumerAdapter struct {
	consumer *rabbitmq_consumer.DistributingConsumer
	store    port.OfferStorePort
	logger   port.LoggerPort
}

func NewOfferEventsConsumerAdapter(
	cfg rabbitmq_consumer.ConsumerConfig,
	store port.OfferStorePort,
	baseLogger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*OfferEventsConsumerAdapter, error) {
	adapter := newOfferEventsHandler(store, baseLogger)

	pkgLogger := baseLogger.WithFields(port.Fields{"component": "rabbitmq_distributing_consumer", "consumer_tag": cfg.ConsumerTag})
	cfg.Logger = logger.NewKeyValueBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(cfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, err
	}
	adapter.consumer = consumer
	return adapter, nil
}

// OfferEventsConsumerConfig - конфигурация эксклюзивной очереди экземпляра.
func OfferEventsConsumerConfig(url string) rabbitmq_consumer.ConsumerConfig {
	return rabbitmq_consumer.ConsumerConfig{
		Config:                 rabbitmq_common.Config{URL: url},
		DeclareQueue:           true,
		ExclusiveQueue:         true,
		AutoDeleteQueue:        true,
		ExchangeNameForBind:    contracts.OffersExchange,
		DeclareExchangeForBind: true,
		ExchangeTypeForBind:    contracts.OffersExchangeType,
		DurableExchangeForBind: true,
		RoutingKeyForBind:      contracts.RoutingKeyOfferEvents,
		PrefetchCount:          constants.OfferEventsPrefetchCount,
		// публикация и снятие одного предложения должны применяться в порядке отправки
		Sequential:             true,
		ConsumerTag:            constants.OfferEventsConsumerTagPrefix + "-" + uuid.NewString(),
	}
}

func newOfferEventsHandler(store port.OfferStorePort, baseLogger port.LoggerPort) *OfferEventsConsumerAdapter {
	return &OfferEventsConsumerAdapter{
		store:  store,
		logger: baseLogger.WithFields(port.Fields{"component": "OfferEventsConsumer"}),
	}
}

// messageHandler - обработчик одного события.
// Битые сообщения подтверждаются: повтор их не исправит.
func (a *OfferEventsConsumerAdapter) messageHandler(ctx context.Context, d amqp.Delivery) error {
	traceID, ok := d.Headers[constants.TraceIDHeader].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
	})
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	if err := contracts.ValidateJSON(contracts.ContractOfferEvent, contracts.V1, d.Body); err != nil {
		msgLogger.Error("Offer event violates contract, dropping message.", err, nil)
		return nil
	}

	var event contracts.OfferEvent
	if err := json.Unmarshal(d.Body, &event); err != nil {
		msgLogger.Error("Failed to unmarshal offer event, dropping message.", err, nil)
		return nil
	}

	return a.apply(ctx, event)
}

func (a *OfferEventsConsumerAdapter) apply(ctx context.Context, event contracts.OfferEvent) error {
	eventLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"event_type": event.Type,
		"offer_id":   event.OfferID,
	})

	switch event.Type {
	case contracts.EventOfferPublished:
		if event.Offer == nil {
			return fmt.Errorf("event %s for offer %d has no offer", event.Type, event.OfferID)
		}
		a.store.UpsertOffer(*event.Offer)
		eventLogger.Info("Offer published", nil)
	case contracts.EventOfferWithdrawn:
		removed := a.store.RemoveOffer(event.OfferID)
		eventLogger.Info("Offer withdrawn", port.Fields{"was_loaded": removed})
	default:
		eventLogger.Warn("Unknown offer event type, ignoring", nil)
	}
	return nil
}

// Start блокируется до отмены ctx.
func (a *OfferEventsConsumerAdapter) Start(ctx context.Context) error {
	a.logger.Info("Starting offer events consumer", nil)
	return a.consumer.StartConsuming(ctx)
}

func (a *OfferEventsConsumerAdapter) Close() error {
	a.logger.Info("Closing offer events consumer", nil)
	return a.consumer.Close()
}
