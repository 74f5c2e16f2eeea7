package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"cargo-dispatch-service/internal/logx"
)

const reconnectDelay = 3 * time.Second

// envelope is the wire format published to the notifications exchange.
type envelope struct {
	RecipientID string    `json:"recipient_id"`
	Event       string    `json:"event"`
	Payload     any       `json:"payload,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// AMQPPublisher publishes delivery events to a durable fanout exchange so
// that downstream consumers (push gateways, analytics) get a copy of every
// notification. The connection is re-established in the background when the
// broker drops it.
type AMQPPublisher struct {
	logger   logx.Logger
	exchange string

	mu        sync.RWMutex
	conn      *amqp091.Connection
	ch        *amqp091.Channel
	connClose chan *amqp091.Error
	closed    atomic.Bool
}

// NewAMQPPublisher dials the broker, declares the exchange and starts the
// reconnect loop.
func NewAMQPPublisher(url, exchange string, logger logx.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{logger: logger, exchange: exchange}
	if err := p.connect(url); err != nil {
		return nil, err
	}
	go p.reconnect(url)
	return p, nil
}

func (p *AMQPPublisher) connect(url string) error {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return fmt.Errorf("notify: dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		return errors.Join(conn.Close(), err)
	}
	if err := ch.ExchangeDeclare(p.exchange, "fanout", true, false, false, false, nil); err != nil {
		return errors.Join(conn.Close(), err)
	}

	p.mu.Lock()
	p.conn = conn
	p.ch = ch
	p.connClose = make(chan *amqp091.Error, 1)
	conn.NotifyClose(p.connClose)
	p.mu.Unlock()
	return nil
}

func (p *AMQPPublisher) reconnect(url string) {
	for {
		p.mu.RLock()
		closeCh := p.connClose
		p.mu.RUnlock()

		<-closeCh
		if p.closed.Load() {
			return
		}
		p.logger.Warn("amqp connection lost, reconnecting")
		for {
			if p.closed.Load() {
				return
			}
			if err := p.connect(url); err != nil {
				p.logger.Warn("amqp reconnect failed", logx.Any("err", err))
				time.Sleep(reconnectDelay)
				continue
			}
			p.logger.Info("amqp reconnected")
			break
		}
	}
}

// Notify publishes a notification envelope. A broken channel surfaces as an
// error for the caller to log; the reconnect loop restores the channel.
func (p *AMQPPublisher) Notify(ctx context.Context, recipientID, event string, payload any) error {
	body, err := json.Marshal(envelope{
		RecipientID: recipientID,
		Event:       event,
		Payload:     payload,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("notify: marshal envelope: %w", err)
	}

	p.mu.RLock()
	ch := p.ch
	p.mu.RUnlock()

	return ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp091.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}

// Close stops the reconnect loop and closes the connection.
func (p *AMQPPublisher) Close() error {
	p.closed.Store(true)
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
