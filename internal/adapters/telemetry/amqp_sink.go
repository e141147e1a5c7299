package telemetry

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/budget_engine/internal/core/domain"
	"github.com/rabbitmq/amqp091-go"
)

const (
	defaultExchange   = "budget.telemetry"
	defaultBufferSize = 256
	publishTimeout    = 5 * time.Second
)

// Publisher is the part of *amqp091.Channel the sink publishes through.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// AMQPSink publishes reports as JSON messages from a background goroutine.
// Report never blocks: when the buffer is full the report is dropped and logged.
type AMQPSink struct {
	publisher Publisher
	exchange  string
	queue     string
	logger    *slog.Logger

	mu     sync.RWMutex
	closed bool
	buf    chan domain.FailureReport
	done   chan struct{}

	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// DialAMQPSink connects to url, declares a durable direct exchange bound to queue and starts publishing.
func DialAMQPSink(url, queue string, logger *slog.Logger) (*AMQPSink, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declare(channel, defaultExchange, queue); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	s := NewAMQPSink(channel, defaultExchange, queue, defaultBufferSize, logger)
	s.conn = conn
	s.channel = channel
	return s, nil
}

func declare(ch *amqp091.Channel, exchange, queue string) error {
	if err := ch.ExchangeDeclare(exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(queue, queue, exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// NewAMQPSink starts a sink over an existing publisher. The queue name is used as routing key.
func NewAMQPSink(publisher Publisher, exchange, queue string, bufferSize int, logger *slog.Logger) *AMQPSink {
	if logger == nil {
		logger = slog.Default()
	}
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	s := &AMQPSink{
		publisher: publisher,
		exchange:  exchange,
		queue:     queue,
		logger:    logger,
		buf:       make(chan domain.FailureReport, bufferSize),
		done:      make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *AMQPSink) Report(_ context.Context, report domain.FailureReport) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return
	}
	select {
	case s.buf <- report:
	default:
		s.logger.Warn("Telemetry buffer full, dropping report", slog.String("action", report.Action))
	}
}

func (s *AMQPSink) run() {
	defer close(s.done)
	for report := range s.buf {
		if err := s.publish(report); err != nil {
			s.logger.Error("Failed to publish telemetry report",
				slog.String("action", report.Action),
				slog.String("queue", s.queue),
				slog.String("error", err.Error()))
		}
	}
}

func (s *AMQPSink) publish(report domain.FailureReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = s.publisher.PublishWithContext(ctx, s.exchange, s.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    report.OccurredAt,
		Type:         report.Action,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// Close stops accepting reports, flushes the buffer and closes the connection if the sink owns one.
func (s *AMQPSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.buf)
	s.mu.Unlock()

	<-s.done
	if s.channel != nil {
		s.channel.Close()
	}
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}
