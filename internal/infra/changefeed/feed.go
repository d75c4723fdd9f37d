package changefeed

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrPublish ошибка публикации события
var ErrPublish = errors.New("changefeed: publish failed")

// Feed лента изменений журнала бронирований поверх redis pub/sub.
// Канал ресторана: <prefix>:<tenant_id>.
type Feed struct {
	client redis.UniversalClient
	prefix string
}

// NewFeed создает ленту изменений
func NewFeed(client redis.UniversalClient, prefix string) *Feed {
	return &Feed{client: client, prefix: prefix}
}

// Channel возвращает имя канала ресторана
func (f *Feed) Channel(tenantID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", f.prefix, tenantID)
}

// Publish отправляет сообщение подписчикам ресторана
func (f *Feed) Publish(ctx context.Context, tenantID uuid.UUID, payload []byte) error {
	if err := f.client.Publish(ctx, f.Channel(tenantID), payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Subscription подписка на канал ресторана
type Subscription struct {
	pubsub   *redis.PubSub
	messages chan []byte
}

// Messages канал входящих сообщений; закрывается после Close или обрыва подписки
func (s *Subscription) Messages() <-chan []byte {
	return s.messages
}

// Close завершает подписку
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

// Subscribe подписывается на изменения ресторана.
// Подписка живёт до Close или отмены ctx.
func (f *Feed) Subscribe(ctx context.Context, tenantID uuid.UUID) (*Subscription, error) {
	pubsub := f.client.Subscribe(ctx, f.Channel(tenantID))

	// дожидаемся подтверждения подписки
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("changefeed: subscribe: %w", err)
	}

	sub := &Subscription{
		pubsub:   pubsub,
		messages: make(chan []byte),
	}

	go func() {
		defer close(sub.messages)
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case sub.messages <- []byte(msg.Payload):
				case <-ctx.Done():
					_ = pubsub.Close()
					return
				}
			}
		}
	}()

	return sub, nil
}

// Stream подписывается на изменения ресторана и возвращает канал сообщений.
// Канал закрывается после отмены ctx.
func (f *Feed) Stream(ctx context.Context, tenantID uuid.UUID) (<-chan []byte, error) {
	sub, err := f.Subscribe(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return sub.Messages(), nil
}
