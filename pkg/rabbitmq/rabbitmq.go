package rabbitmq

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	amqp "github.com/streadway/amqp"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     Config
	log     zerolog.Logger
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// Exchange is declared as a durable topic exchange on connect.
	Exchange string
	// Queue is bound to Exchange with BindingKey and used by Consume.
	Queue      string
	BindingKey string
}

// DefaultConfig returns the exchange/queue layout used for stock movements.
func DefaultConfig(url string) Config {
	return Config{
		URL:        url,
		Exchange:   "inventory",
		Queue:      "inventory_movements",
		BindingKey: "stock.#",
	}
}

// NewClient connects to RabbitMQ, opens a channel and declares the exchange
// and the bound queue.
func NewClient(cfg Config, log zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("exchange", cfg.Exchange).Str("queue", cfg.Queue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
		cfg:     cfg,
		log:     log,
	}, nil
}

func declareTopology(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // kind
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", cfg.Exchange, err)
	}

	if _, err := ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.Queue, err)
	}

	if err := ch.QueueBind(cfg.Queue, cfg.BindingKey, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", cfg.Queue, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// Publish sends a persistent JSON message to exchange with routingKey.
func (c *Client) Publish(exchange, routingKey string, body []byte) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		exchange,   // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug().Str("routing_key", routingKey).Int("bytes", len(body)).Msg("published message")
	return nil
}

// Consume starts delivering messages from the configured queue to handler in
// a goroutine. A handler error nacks the message without requeueing it, so a
// poison message cannot loop forever.
func (c *Client) Consume(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.cfg.Queue, // queue
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.log.Info().Str("queue", c.cfg.Queue).Msg("waiting for movement events")

	go func() {
		for msg := range msgs {
			if err := handler(msg); err != nil {
				c.log.Error().Err(err).Uint64("delivery_tag", msg.DeliveryTag).Msg("error processing message")
				if nackErr := msg.Nack(false, false); nackErr != nil {
					c.log.Error().Err(nackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error nacking message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.Error().Err(ackErr).Uint64("delivery_tag", msg.DeliveryTag).Msg("error acking message")
			}
		}
	}()

	return nil
}
