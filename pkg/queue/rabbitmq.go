package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationsExchange = "notifications"

// Event kinds published to the notifications exchange. Consumers route
// on them via the routing key.
const (
	EventNewPost = "post.created"
	EventLiked   = "post.liked"
)

type Event struct {
	Kind      string    `json:"kind"`
	ActorID   string    `json:"actor_id"`
	PostID    string    `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewPublisher connects to RabbitMQ and declares the notifications
// exchange. The returned Publisher is safe to share between usecases.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("queue: channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		notificationsExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("queue: declare exchange: %w", err)
	}

	return &Publisher{conn: conn, channel: ch}, nil
}

// Publish sends the event to the notifications exchange using the event
// kind as the routing key.
func (p *Publisher) Publish(ctx context.Context, ev Event) error {
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now().UTC()
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("queue: marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx,
		notificationsExchange,
		ev.Kind,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   ev.CreatedAt,
		},
	)
	if err != nil {
		return fmt.Errorf("queue: publish %s: %w", ev.Kind, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
