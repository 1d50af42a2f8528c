package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/constants"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/core/port"
)

// messagePublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// OfferEventsPublisher отправляет события предложений в offers_exchange.
type OfferEventsPublisher struct {
	producer   messagePublisher
	routingKey string
}

var _ port.OfferEventsPort = (*OfferEventsPublisher)(nil)

func NewOfferEventsPublisher(producer messagePublisher) (*OfferEventsPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &OfferEventsPublisher{
		producer:   producer,
		routingKey: contracts.RoutingKeyOfferEvents,
	}, nil
}

func (a *OfferEventsPublisher) PublishOfferEvent(ctx context.Context, event contracts.OfferEvent) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "OfferEventsPublisher",
		"routing_key": a.routingKey,
		"event_type":  event.Type,
		"offer_id":    event.OfferID,
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal offer event to JSON", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal event for offer %d: %w", event.OfferID, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         event.Type,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.TraceIDHeader] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, constants.PublishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish offer event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish event for offer %d: %w", event.OfferID, err)
	}

	adapterLogger.Debug("Offer event published", nil)
	return nil
}

// NoopOfferEventsPublisher используется, когда брокер не настроен.
type NoopOfferEventsPublisher struct {
	logger port.LoggerPort
}

var _ port.OfferEventsPort = (*NoopOfferEventsPublisher)(nil)

func NewNoopOfferEventsPublisher(logger port.LoggerPort) *NoopOfferEventsPublisher {
	return &NoopOfferEventsPublisher{logger: logger.WithFields(port.Fields{"component": "NoopOfferEventsPublisher"})}
}

func (n *NoopOfferEventsPublisher) PublishOfferEvent(_ context.Context, event contracts.OfferEvent) error {
	n.logger.Debug("RabbitMQ disabled, offer event skipped", port.Fields{"event_type": event.Type, "offer_id": event.OfferID})
	return nil
}
