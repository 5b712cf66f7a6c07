// Package events announces accepted intake forms to other systems.
package events

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/streadway/amqp"
)

// IntakeEvent is published after an intake form has been stored.
type IntakeEvent struct {
	ID        uint   `json:"id"`
	Name      string `json:"nome"`
	Timestamp string `json:"timestamp"`
}

// Publisher publishes intake events.
type Publisher interface {
	Publish(ctx context.Context, event IntakeEvent) error
	Close() error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish discards the event.
func (NopPublisher) Publish(context.Context, IntakeEvent) error {
	return nil
}

// Close does nothing.
func (NopPublisher) Close() error {
	return nil
}

// AMQPPublisher publishes events as JSON messages to a RabbitMQ queue.
type AMQPPublisher struct {
	mu      sync.Mutex
	url     string
	queue   string
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  chan *amqp.Error
}

// NewAMQPPublisher connects to url and declares queue.
func NewAMQPPublisher(url, queue string) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, queue: queue}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errors.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "open channel")
	}
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return errors.Wrapf(err, "declare queue %s", p.queue)
	}
	p.conn = conn
	p.channel = ch
	p.closed = conn.NotifyClose(make(chan *amqp.Error, 1))
	return nil
}

// isClosed reports whether the broker connection has shut down. The notify
// channel is closed on shutdown, so the receive never blocks afterwards.
func (p *AMQPPublisher) isClosed() bool {
	if p.conn == nil {
		return true
	}
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}

// Publish sends event, reconnecting once if the connection was closed.
func (p *AMQPPublisher) Publish(ctx context.Context, event IntakeEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "encode event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isClosed() {
		if err := p.connect(); err != nil {
			return err
		}
	}
	err = p.channel.Publish("", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	return errors.Wrapf(err, "publish to %s", p.queue)
}

// Close closes the broker connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.isClosed() {
		return nil
	}
	return p.conn.Close()
}
