package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NotificationsExchange fanout-обменник для событий уведомлений.
const NotificationsExchange = "notifications"

var ErrPublisherClosed = errors.New("соединение с брокером закрыто")

// channel подмножество *amqp.Channel, которым пользуется Publisher.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// connection подмножество *amqp.Connection, которым пользуется Publisher.
type connection interface {
	Channel() (channel, error)
	IsClosed() bool
	Close() error
}

type amqpConnection struct {
	*amqp.Connection
}

func (c amqpConnection) Channel() (channel, error) {
	ch, err := c.Connection.Channel()
	if err != nil {
		return nil, err
	}
	return ch, nil
}

func dialAMQP(url string) (connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return amqpConnection{conn}, nil
}

// Publisher публикует JSON-события в обменник RabbitMQ.
type Publisher struct {
	url      string
	exchange string
	dial     func(url string) (connection, error)
	conn     connection
	ch       channel
	closed   bool
	mu       sync.Mutex
}

// NewPublisher подключается к брокеру и объявляет обменник.
func NewPublisher(url, exchange string) (*Publisher, error) {
	return newPublisher(url, exchange, dialAMQP)
}

func newPublisher(url, exchange string, dial func(url string) (connection, error)) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange, dial: dial}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

// connect открывает новое соединение и канал на нем.
func (p *Publisher) connect() error {
	conn, err := p.dial(p.url)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к RabbitMQ: %w", err)
	}

	ch, err := p.openChannel(conn)
	if err != nil {
		conn.Close()
		return err
	}

	p.conn = conn
	p.ch = ch
	return nil
}

func (p *Publisher) openChannel(conn connection) (channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть канал RabbitMQ: %w", err)
	}

	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		ch.Close()
		return nil, fmt.Errorf("не удалось объявить обменник %s: %w", p.exchange, err)
	}
	return ch, nil
}

// ensureChannel восстанавливает закрытый канал. Пока соединение живо,
// переоткрывается только канал, иначе соединение закрывается и устанавливается заново.
func (p *Publisher) ensureChannel() error {
	connAlive := p.conn != nil && !p.conn.IsClosed()
	if connAlive && p.ch != nil && !p.ch.IsClosed() {
		return nil
	}

	if connAlive {
		ch, err := p.openChannel(p.conn)
		if err == nil {
			p.ch = ch
			return nil
		}
		p.conn.Close()
	}

	return p.connect()
}

// Publish сериализует событие и отправляет его в обменник.
// Закрытый канал или соединение переоткрываются один раз.
func (p *Publisher) Publish(ctx context.Context, event interface{}) error {
	msg, err := newPublishing(event, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	if err := p.ensureChannel(); err != nil {
		return err
	}

	if err := p.ch.PublishWithContext(ctx, p.exchange, "", false, false, msg); err != nil {
		return fmt.Errorf("не удалось опубликовать событие: %w", err)
	}
	return nil
}

func newPublishing(event interface{}, now time.Time) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("не удалось сериализовать событие: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Body:         body,
	}, nil
}

// Close закрывает канал и соединение. После Close публикация возвращает ErrPublisherClosed.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	if p.ch != nil && !p.ch.IsClosed() {
		if err := p.ch.Close(); err != nil {
			return fmt.Errorf("close rabbitmq channel: %w", err)
		}
	}

	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}
