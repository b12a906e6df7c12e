package rabbitmq

import (
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	cfg     Config
	log     *zap.Logger
	// amqp channels are not safe for concurrent publishing.
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
	// Exchange is the durable topic exchange catalog events go to.
	Exchange string
	// Queue, when set, is declared and bound to Exchange with BindingKey.
	Queue      string
	BindingKey string
}

// NewClient creates a new RabbitMQ client.
// It connects to RabbitMQ, opens a channel and declares the catalog exchange.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c := &Client{conn: conn, channel: ch, cfg: cfg, log: log.Named("rabbitmq")}
	if err := c.declare(); err != nil {
		c.Close()
		return nil, err
	}

	c.log.Info("RabbitMQ client connected", zap.String("exchange", cfg.Exchange), zap.String("queue", cfg.Queue))
	return c, nil
}

func (c *Client) declare() error {
	err := c.channel.ExchangeDeclare(
		c.cfg.Exchange, // name
		"topic",        // kind
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", c.cfg.Exchange, err)
	}

	if c.cfg.Queue == "" {
		return nil
	}
	if _, err := c.channel.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", c.cfg.Queue, err)
	}
	if err := c.channel.QueueBind(c.cfg.Queue, c.bindingKey(), c.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", c.cfg.Queue, err)
	}
	return nil
}

func (c *Client) bindingKey() string {
	if c.cfg.BindingKey == "" {
		return "#"
	}
	return c.cfg.BindingKey
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

	c.mu.Lock()
	defer c.mu.Unlock()

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
	return nil
}

// ConsumeCatalogEvents delivers every message of the configured queue to
// handler. Messages are acked on success and rejected without requeue on
// failure, so a poison message cannot loop.
func (c *Client) ConsumeCatalogEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}
	if c.cfg.Queue == "" {
		return fmt.Errorf("no queue configured for consumption")
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

	go func() {
		for msg := range msgs {
			c.dispatch(msg, handler)
		}
		c.log.Info("Catalog event consumer stopped")
	}()
	return nil
}

func (c *Client) dispatch(msg amqp.Delivery, handler func(msg amqp.Delivery) error) {
	if err := handler(msg); err != nil {
		c.log.Warn("Error processing message",
			zap.Uint64("delivery_tag", msg.DeliveryTag),
			zap.String("routing_key", msg.RoutingKey),
			zap.Error(err),
		)
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.log.Error("Error nacking message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(nackErr))
		}
		return
	}
	if ackErr := msg.Ack(false); ackErr != nil {
		c.log.Error("Error acking message", zap.Uint64("delivery_tag", msg.DeliveryTag), zap.Error(ackErr))
	}
}

// LogCatalogEvent is a handler for ConsumeCatalogEvents that records each
// event in the log.
func LogCatalogEvent(log *zap.Logger) func(msg amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		log.Info("Received catalog event",
			zap.String("routing_key", msg.RoutingKey),
			zap.ByteString("body", msg.Body),
		)
		return nil
	}
}
