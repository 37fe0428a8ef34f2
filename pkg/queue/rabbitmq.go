// Package queue wraps RabbitMQ publishing and consuming of JSON envelopes.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/logger"
)

// ErrPoison marks deliveries that can never be processed and must not be requeued.
var ErrPoison = errors.New("poison message")

type Client struct {
	conn *amqp.Connection

	mu sync.Mutex
	ch *amqp.Channel
}

func Dial(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	logger.Infof("Connected to RabbitMQ")
	return &Client{conn: conn, ch: ch}, nil
}

// DeclareExchange declares a durable exchange of the given kind.
func (c *Client) DeclareExchange(name, kind string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ch.ExchangeDeclare(name, kind, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", name, err)
	}
	return nil
}

// DeclareQueue declares a durable queue bound to exchange with key.
func (c *Client) DeclareQueue(queue, exchange, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	if err := c.ch.QueueBind(queue, key, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue %s: %w", queue, err)
	}
	return nil
}

// PublishJSON publishes an Envelope as JSON with proper AMQP headers.
func (c *Client) PublishJSON(ctx context.Context, exchange, routingKey string, env Envelope) error {
	if env.Meta.ID == "" {
		return fmt.Errorf("envelope.Meta.ID is required")
	}
	if env.Meta.CorrelationID == "" {
		env.Meta.CorrelationID = env.Meta.ID
	}
	if env.Meta.Time.IsZero() {
		env.Meta.Time = time.Now().UTC()
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.ch.PublishWithContext(ctx, exchange, routingKey, false, false, amqp.Publishing{
		ContentType:   "application/json",
		Body:          body,
		DeliveryMode:  amqp.Persistent,
		MessageId:     env.Meta.ID,
		CorrelationId: env.Meta.CorrelationID,
		Type:          env.Meta.Type,
		Timestamp:     env.Meta.Time,
		AppId:         env.Meta.Producer,
	})
}

// Consume runs handler for every delivery on queue until ctx is cancelled.
// Handler errors requeue the delivery once; ErrPoison and redelivered
// failures are dropped.
func (c *Client) Consume(ctx context.Context, queue string, prefetch int, handler func(context.Context, amqp.Delivery) error) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("open consumer channel: %w", err)
	}
	defer ch.Close()

	if prefetch <= 0 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("consumer channel for %s closed", queue)
			}

			err := handler(ctx, d)
			switch {
			case err == nil:
				_ = d.Ack(false)
			case errors.Is(err, ErrPoison) || d.Redelivered:
				logger.Errorf("Dropping delivery %s from %s: %v", d.MessageId, queue, err)
				_ = d.Nack(false, false)
			default:
				logger.Warnf("Requeueing delivery %s from %s: %v", d.MessageId, queue, err)
				_ = d.Nack(false, true)
			}
		}
	}
}

func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ch != nil {
		_ = c.ch.Close()
	}
	return c.conn.Close()
}
