// Package rmqconsumer consumes broker deliveries and hands each one
// to an injected handler. Acknowledgement is manual: a handler error
// requeues the delivery instead of losing it.
package rmqconsumer

import (
	"context"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"filestore-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

// Handler processes one delivery. A nil result acks the message.
type Handler func(ctx context.Context, d amqp091.Delivery) error

type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	handler    Handler
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
}

func New(cfg config.MQ, logger *zap.Logger, handler Handler) *Consumer {
	return &Consumer{
		cfg:     cfg,
		log:     logger,
		handler: handler,
	}
}

func (c *Consumer) Connect(dsn string) error {
	var err error
	c.conn, err = amqp091.Dial(dsn)
	if err != nil {
		return fmt.Errorf("amqp dial: %w", err)
	}
	c.chConsume, err = c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init(bindKeys []string) error {
	var err error
	if err = c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err = c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	for _, rk := range bindKeys {
		if err = c.chConsume.QueueBind(
			c.cfg.QueueName,
			rk,
			c.cfg.Exchange,
			false,
			nil,
		); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	if err = c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				return
			}
			if err := c.handler(ctx, msg); err != nil {
				c.log.Error("mq read message error", zap.Error(err))
				_ = msg.Nack(false, true)
				continue
			}
			_ = msg.Ack(false)
		case <-ctx.Done():
			c.chConsume.Close()
			return
		}
	}
}
