package rabbitmq_consumer

import (
	"context"
	"fmt"

	"github.com/yuriynekrasov/hizzle/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Решение об ack/nack принимает пакет:
// nil - ack, ошибка - nack без возврата в очередь.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// DistributingConsumer раздает сообщения обработчику: каждое в своей горутине
// или, при ConsumerConfig.Sequential, строго по очереди.
type DistributingConsumer struct {
	baseConsumer *baseConsumer
	handler      MessageHandler
}

// NewDistributingConsumer создает нового потребителя
func NewDistributingConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*DistributingConsumer, error) {
	if handler == nil {
		return nil, fmt.Errorf("distributing Consumer: message handler is required")
	}

	bc, err := newBaseConsumer(cfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("distributing Consumer: %w", err)
	}

	return &DistributingConsumer{
		baseConsumer: bc,
		handler:      handler,
	}, nil
}

// StartConsuming блокируется до отмены ctx или закрытия соединения.
func (c *DistributingConsumer) StartConsuming(ctx context.Context) error {
	bc := c.baseConsumer
	if bc.channel == nil || bc.connection == nil || bc.connection.IsClosed() {
		return fmt.Errorf("distributing Consumer: not connected")
	}

	msgs, err := bc.channel.Consume(
		bc.actualQueueName,
		bc.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("distributing Consumer %s: failed to register a consumer on queue '%s': %w", bc.config.ConsumerTag, bc.actualQueueName, err)
	}

	bc.Logger.Info("[*] Waiting for messages on queue", "queue_name", bc.actualQueueName, "sequential", bc.config.Sequential)

	go c.consumeLoop(ctx, msgs)

	notifyClose := make(chan *amqp.Error, 1)
	bc.connection.NotifyClose(notifyClose)

	select {
	case <-ctx.Done():
		bc.Logger.Info("Context cancelled. Shutting down consumer.", "consumer_tag", bc.config.ConsumerTag)
		return nil
	case err := <-notifyClose:
		if err == nil {
			return nil
		}
		bc.Logger.Error(err, "Connection closed for consumer.", "consumer_tag", bc.config.ConsumerTag)
		return err
	}
}

// consumeLoop читает доставки до отмены ctx или закрытия канала msgs.
func (c *DistributingConsumer) consumeLoop(ctx context.Context, msgs <-chan amqp.Delivery) {
	bc := c.baseConsumer
	for {
		// не запускаем новых обработчиков после отмены
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case <-ctx.Done():
			bc.Logger.Info("Context cancelled for consumer. Exiting consumption loop.", "consumer_tag", bc.config.ConsumerTag)
			return
		case d, ok := <-msgs:
			if !ok {
				bc.Logger.Info("Deliveries channel closed by RabbitMQ. Exiting loop.", "consumer_tag", bc.config.ConsumerTag)
				return
			}
			bc.wg.Add(1)
			if bc.config.Sequential {
				c.process(ctx, d)
				bc.wg.Done()
				continue
			}
			go func(delivery amqp.Delivery) {
				defer bc.wg.Done()
				c.process(ctx, delivery)
			}(d)
		}
	}
}

func (c *DistributingConsumer) process(ctx context.Context, delivery amqp.Delivery) {
	bc := c.baseConsumer
	bc.Logger.Debug("[->] Started processing message",
		"consumer_tag", bc.config.ConsumerTag,
		"delivery_tag", delivery.DeliveryTag)

	if err := c.handler(ctx, delivery); err != nil {
		bc.Logger.Error(err, "Handler error for message, dropping it",
			"consumer_tag", bc.config.ConsumerTag,
			"delivery_tag", delivery.DeliveryTag)
		if nackErr := delivery.Nack(false, false); nackErr != nil {
			bc.Logger.Error(nackErr, "Failed to nack message", "delivery_tag", delivery.DeliveryTag)
		}
		return
	}

	if err := delivery.Ack(false); err != nil {
		bc.Logger.Error(err, "Failed to ack message", "delivery_tag", delivery.DeliveryTag)
		return
	}
	bc.Logger.Debug("[+] Message acknowledged",
		"consumer_tag", bc.config.ConsumerTag,
		"delivery_tag", delivery.DeliveryTag)
}

// Close дожидается обработчиков и закрывает канал.
func (c *DistributingConsumer) Close() error {
	c.baseConsumer.Logger.Info("Closing consumer", "consumer_tag", c.baseConsumer.config.ConsumerTag)
	return c.baseConsumer.Close()
}
