package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuriynekrasov/hizzle/pkg/contextkeys"
	"github.com/yuriynekrasov/hizzle/pkg/contracts"
	"github.com/yuriynekrasov/hizzle/services/listing-service/internal/constants"
)

type recordingPublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, msg amqp.Publishing) error {
	p.routingKey = routingKey
	p.msg = msg
	return p.err
}

func TestNewOfferEventsPublisherRequiresProducer(t *testing.T) {
	_, err := NewOfferEventsPublisher(nil)
	assert.Error(t, err)
}

func TestPublishOfferEvent(t *testing.T) {
	rec := &recordingPublisher{}
	pub, err := NewOfferEventsPublisher(rec)
	require.NoError(t, err)

	offer := contracts.Offer{
		ID: 1, OfferedBy: "Alice", Price: 250000,
		Property: contracts.Property{ID: 10, Kind: "house", Location: "Springfield", Bedrooms: 3, Area: 120},
	}
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")

	err = pub.PublishOfferEvent(ctx, contracts.OfferEvent{Type: contracts.EventOfferPublished, OfferID: 1, Offer: &offer})
	require.NoError(t, err)

	assert.Equal(t, contracts.RoutingKeyOfferEvents, rec.routingKey)
	assert.Equal(t, "trace-1", rec.msg.Headers[constants.TraceIDHeader])
	assert.Equal(t, contracts.EventOfferPublished, rec.msg.Type)
	require.NoError(t, contracts.ValidateJSON(contracts.ContractOfferEvent, contracts.V1, rec.msg.Body))

	var decoded contracts.OfferEvent
	require.NoError(t, json.Unmarshal(rec.msg.Body, &decoded))
	require.NotNil(t, decoded.Offer)
	assert.Equal(t, offer, *decoded.Offer)
}

func TestPublishOfferEventWithoutTrace(t *testing.T) {
	rec := &recordingPublisher{}
	pub, err := NewOfferEventsPublisher(rec)
	require.NoError(t, err)

	require.NoError(t, pub.PublishOfferEvent(context.Background(), contracts.OfferEvent{Type: contracts.EventOfferWithdrawn, OfferID: 7}))
	_, ok := rec.msg.Headers[constants.TraceIDHeader]
	assert.False(t, ok)
}

func TestPublishOfferEventError(t *testing.T) {
	rec := &recordingPublisher{err: errors.New("channel closed")}
	pub, err := NewOfferEventsPublisher(rec)
	require.NoError(t, err)

	err = pub.PublishOfferEvent(context.Background(), contracts.OfferEvent{Type: contracts.EventOfferWithdrawn, OfferID: 7})
	assert.ErrorContains(t, err, "channel closed")
}
