package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// WebhookSink отправляет уведомление POST-запросом
type WebhookSink struct {
	url        string
	httpClient *http.Client
}

// NewWebhookSink создает webhook-приёмник
func NewWebhookSink(url string, timeout time.Duration) *WebhookSink {
	return &WebhookSink{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: webhook encode: %v", ErrDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: webhook request: %v", ErrDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: webhook call: %v", ErrDelivery, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%w: webhook status %d", ErrDelivery, resp.StatusCode)
	}

	return nil
}

// AMQPSink публикует уведомления в durable очередь RabbitMQ.
// Соединение открывается лениво и переустанавливается после ошибки.
type AMQPSink struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPSink создает приёмник RabbitMQ
func NewAMQPSink(url, queue string) *AMQPSink {
	return &AMQPSink{url: url, queue: queue}
}

func (s *AMQPSink) Name() string { return "amqp" }

func (s *AMQPSink) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: amqp encode: %v", ErrDelivery, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureChannel(); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         msg.Type,
		Body:         body,
	}

	// default exchange, routing key = имя очереди
	if err := s.ch.PublishWithContext(ctx, "", s.queue, false, false, pub); err != nil {
		s.resetLocked()
		return fmt.Errorf("%w: amqp publish: %v", ErrDelivery, err)
	}

	return nil
}

func (s *AMQPSink) ensureChannel() error {
	if s.ch != nil && !s.ch.IsClosed() {
		return nil
	}
	s.resetLocked()

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return fmt.Errorf("%w: amqp dial: %v", ErrDelivery, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("%w: amqp channel: %v", ErrDelivery, err)
	}

	if _, err := ch.QueueDeclare(s.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("%w: amqp queue declare: %v", ErrDelivery, err)
	}

	s.conn = conn
	s.ch = ch
	return nil
}

func (s *AMQPSink) resetLocked() {
	if s.ch != nil {
		_ = s.ch.Close()
		s.ch = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}

// Close закрывает соединение с брокером
func (s *AMQPSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	return nil
}

// FeedSink пересылает уведомления в ленту изменений ресторана
type FeedSink struct {
	feed FeedPublisher
}

// NewFeedSink создает приёмник ленты изменений
func NewFeedSink(feed FeedPublisher) *FeedSink {
	return &FeedSink{feed: feed}
}

func (s *FeedSink) Name() string { return "changefeed" }

func (s *FeedSink) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: feed encode: %v", ErrDelivery, err)
	}
	if err := s.feed.Publish(ctx, msg.TenantID, payload); err != nil {
		return fmt.Errorf("%w: feed publish: %v", ErrDelivery, err)
	}
	return nil
}
