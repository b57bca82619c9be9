package amqp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/contribmap/pkg/domain/interfaces"
	"github.com/m-mizutani/contribmap/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/streadway/amqp"
)

// Channel is the subset of *amqp.Channel used by Publisher
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Message is the body published for each broadcast
type Message struct {
	Kind    types.EventKind `json:"kind"`
	SentAt  time.Time       `json:"sent_at"`
	Payload any             `json:"payload"`
}

// Publisher broadcasts portal activity to a fanout exchange
type Publisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
	now      func() time.Time
}

var _ interfaces.Notifier = (*Publisher)(nil)

// Dial connects to the broker and declares a durable fanout exchange
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, goerr.Wrap(err, "failed to open channel")
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, goerr.Wrap(err, "failed to declare exchange", goerr.V("exchange", exchange))
	}

	p := NewPublisher(ch, exchange)
	p.conn = conn
	return p, nil
}

// NewPublisher creates a Publisher on an open channel
func NewPublisher(ch Channel, exchange string) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		now:      time.Now,
	}
}

// Notify publishes the event as JSON. The routing key is the event kind.
func (p *Publisher) Notify(ctx context.Context, kind types.EventKind, payload any) error {
	msg := Message{
		Kind:    kind,
		SentAt:  p.now().UTC(),
		Payload: payload,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal broadcast message", goerr.V("kind", kind))
	}

	if err := p.channel.Publish(p.exchange, string(kind), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    msg.SentAt,
		Type:         string(kind),
		Body:         body,
	}); err != nil {
		return goerr.Wrap(err, "failed to publish broadcast message",
			goerr.V("exchange", p.exchange),
			goerr.V("kind", kind),
		)
	}
	return nil
}

// Close releases the channel and connection
func (p *Publisher) Close() error {
	if err := p.channel.Close(); err != nil {
		return goerr.Wrap(err, "failed to close channel")
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return goerr.Wrap(err, "failed to close connection")
		}
	}
	return nil
}
