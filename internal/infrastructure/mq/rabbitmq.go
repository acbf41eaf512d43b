package mq

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"filestore-api/config"
	"filestore-api/internal/domain/brokermessage"
)

type RabbitMQ struct {
	cfg   config.MQ
	log   *zap.Logger
	conn  *amqp091.Connection
	pubCh *amqp091.Channel
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "filestoreapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
		TLSClientConfig: nil,
	}

	var err error
	r.conn, err = amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	r.pubCh, err = r.conn.Channel()
	if err != nil {
		_ = r.conn.Close()
		return err
	}

	r.log.Info("rabbitmq connected successfully")

	return err
}

func (r *RabbitMQ) Init() error {
	var err error
	if err = r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = r.pubCh.Close()
		return err
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for _, rk := range r.BindKeys() {
		if err = r.pubCh.QueueBind(q.Name, rk, r.cfg.Exchange, false, nil); err != nil {
			return err
		}
	}

	return nil
}

// BindKeys lists the routing keys this application publishes and
// consumes.
func (r *RabbitMQ) BindKeys() []string {
	return []string{
		brokermessage.KeyFileStored,
		brokermessage.KeyFileDeleted,
	}
}

// Publish sends one outbox envelope. The outbox row id rides along as
// MessageId so consumers can deduplicate, and the originating node as
// AppId.
func (r *RabbitMQ) Publish(ctx context.Context, app, key string, body json.RawMessage, id uuid.UUID) error {
	pub := amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    id.String(),
		AppId:        app,
		Timestamp:    time.Now(),
		Body:         body,
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		key,
		true,
		false,
		pub,
	)
}

func (r *RabbitMQ) Close() {
	if r.pubCh != nil {
		_ = r.pubCh.Close()
	}
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
