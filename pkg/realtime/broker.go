package realtime

import (
	"context"

	"github.com/onurcolak/whatsapp-session-bridge/pkg/queue"
)

type envelopePublisher interface {
	PublishJSON(ctx context.Context, exchange, routingKey string, env queue.Envelope) error
}

// BrokerPublisher mirrors events to a RabbitMQ exchange so that other bridge
// instances and external consumers see them. The topic is the routing key.
type BrokerPublisher struct {
	client   envelopePublisher
	exchange string
}

func NewBrokerPublisher(client envelopePublisher, exchange string) *BrokerPublisher {
	return &BrokerPublisher{client: client, exchange: exchange}
}

func (p *BrokerPublisher) Publish(ctx context.Context, topic string, payload any) error {
	return p.client.PublishJSON(ctx, p.exchange, topic, queue.NewEnvelope(topic, payload))
}

// Fanout publishes to every wrapped publisher and returns the first error.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, topic string, payload any) error {
	var firstErr error
	for _, p := range f {
		if err := p.Publish(ctx, topic, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
