package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	jsoniter "github.com/json-iterator/go"
	amqp "github.com/rabbitmq/amqp091-go"
)

const publisherAppID = "library-lending"

type EventPublisher interface {
	PublishBorrowingOpened(ctx context.Context, event BorrowingOpenedEvent) error
	PublishBorrowingClosed(ctx context.Context, event BorrowingClosedEvent) error
	PublishFineAssessed(ctx context.Context, event FineAssessedEvent) error
	PublishFinePaid(ctx context.Context, event FinePaidEvent) error
	PublishEmailRequested(ctx context.Context, event EmailRequestedEvent) error
}

type RabbitMQEventPublisher struct {
	conn         *amqp.Connection
	exchangeName string
	logger       *slog.Logger
}

var _ EventPublisher = (*RabbitMQEventPublisher)(nil)

func NewRabbitMQEventPublisher(conn *amqp.Connection, exchangeName string, logger *slog.Logger) (*RabbitMQEventPublisher, error) {
	if conn == nil {
		return nil, fmt.Errorf("RabbitMQ connection cannot be nil")
	}
	if exchangeName == "" {
		return nil, fmt.Errorf("RabbitMQ exchange name cannot be empty")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	tempCh, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary channel for exchange declaration: %w", err)
	}
	defer tempCh.Close()

	err = tempCh.ExchangeDeclare(
		exchangeName,
		amqp.ExchangeTopic,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange '%s': %w", exchangeName, err)
	}
	logger.Info("Ensured RabbitMQ exchange exists", "exchange", exchangeName, "type", amqp.ExchangeTopic)

	return &RabbitMQEventPublisher{
		conn:         conn,
		exchangeName: exchangeName,
		logger:       logger.With("component", "RabbitMQEventPublisher", "exchange", exchangeName),
	}, nil
}

func (p *RabbitMQEventPublisher) PublishBorrowingOpened(ctx context.Context, event BorrowingOpenedEvent) error {
	return p.publish(ctx, RoutingKeyBorrowingOpened, NewEnvelope(RoutingKeyBorrowingOpened, event))
}

func (p *RabbitMQEventPublisher) PublishBorrowingClosed(ctx context.Context, event BorrowingClosedEvent) error {
	return p.publish(ctx, RoutingKeyBorrowingClosed, NewEnvelope(RoutingKeyBorrowingClosed, event))
}

func (p *RabbitMQEventPublisher) PublishFineAssessed(ctx context.Context, event FineAssessedEvent) error {
	return p.publish(ctx, RoutingKeyFineAssessed, NewEnvelope(RoutingKeyFineAssessed, event))
}

func (p *RabbitMQEventPublisher) PublishFinePaid(ctx context.Context, event FinePaidEvent) error {
	return p.publish(ctx, RoutingKeyFinePaid, NewEnvelope(RoutingKeyFinePaid, event))
}

func (p *RabbitMQEventPublisher) PublishEmailRequested(ctx context.Context, event EmailRequestedEvent) error {
	return p.publish(ctx, RoutingKeyEmailRequested, NewEnvelope(RoutingKeyEmailRequested, event))
}

func (p *RabbitMQEventPublisher) publish(ctx context.Context, routingKey string, envelope Envelope) error {
	logCtx := p.logger.With(slog.String("routingKey", routingKey), slog.String("eventId", envelope.EventID))

	channel, err := p.conn.Channel()
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to open RabbitMQ channel", slog.Any("error", err))
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer channel.Close()

	body, err := marshalEnvelope(envelope)
	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to marshal event payload to JSON", slog.Any("error", err))
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logCtx.DebugContext(ctx, "Publishing message", "bodySize", len(body))

	err = channel.PublishWithContext(
		ctx,
		p.exchangeName,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    envelope.EventID,
			Timestamp:    time.Now(),
			Body:         body,
			AppId:        publisherAppID,
		},
	)

	if err != nil {
		logCtx.ErrorContext(ctx, "Failed to publish message to RabbitMQ", slog.Any("error", err))
		return fmt.Errorf("failed to publish message: %w", err)
	}

	logCtx.InfoContext(ctx, "Successfully published message")
	return nil
}

func marshalEnvelope(envelope Envelope) ([]byte, error) {
	return jsoniter.ConfigFastest.Marshal(envelope)
}

// NopPublisher drops every event. It backs the service when the broker is disabled.
type NopPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*NopPublisher)(nil)

func NewNopPublisher(logger *slog.Logger) *NopPublisher {
	return &NopPublisher{logger: logger.With("component", "NopPublisher")}
}

func (p *NopPublisher) drop(ctx context.Context, routingKey string) error {
	p.logger.DebugContext(ctx, "Event publishing disabled, dropping event", "routingKey", routingKey)
	return nil
}

func (p *NopPublisher) PublishBorrowingOpened(ctx context.Context, _ BorrowingOpenedEvent) error {
	return p.drop(ctx, RoutingKeyBorrowingOpened)
}

func (p *NopPublisher) PublishBorrowingClosed(ctx context.Context, _ BorrowingClosedEvent) error {
	return p.drop(ctx, RoutingKeyBorrowingClosed)
}

func (p *NopPublisher) PublishFineAssessed(ctx context.Context, _ FineAssessedEvent) error {
	return p.drop(ctx, RoutingKeyFineAssessed)
}

func (p *NopPublisher) PublishFinePaid(ctx context.Context, _ FinePaidEvent) error {
	return p.drop(ctx, RoutingKeyFinePaid)
}

func (p *NopPublisher) PublishEmailRequested(ctx context.Context, _ EmailRequestedEvent) error {
	return p.drop(ctx, RoutingKeyEmailRequested)
}
