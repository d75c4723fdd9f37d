package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// Dispatcher раздаёт события всем приёмникам в фоне.
// Ошибки доставки только логируются и не влияют на вызывающего.
type Dispatcher struct {
	sinks       []Sink
	queue       chan Message
	sendTimeout time.Duration
	metrics     MetricsRecorder
	log         Logger

	wg        sync.WaitGroup
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
}

// Config параметры диспетчера
type Config struct {
	Workers     int
	BufferSize  int
	SendTimeout time.Duration
}

// NewDispatcher создает диспетчер и запускает воркеры; metrics может быть nil
func NewDispatcher(cfg Config, sinks []Sink, metrics MetricsRecorder, log Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 100
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 5 * time.Second
	}

	d := &Dispatcher{
		sinks:       sinks,
		queue:       make(chan Message, cfg.BufferSize),
		sendTimeout: cfg.SendTimeout,
		metrics:     metrics,
		log:         log,
	}

	for i := 0; i < cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Notify ставит событие в очередь, не блокируя вызывающего
func (d *Dispatcher) Notify(event domain.BookingEvent) {
	if len(d.sinks) == 0 {
		return
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	msg := NewMessage(event)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notifier: dropping %s for tenant=%s: %v", msg.Type, msg.TenantID, ErrClosed)
		return
	}

	select {
	case d.queue <- msg:
	default:
		d.log.Warn("Notifier: dropping %s for tenant=%s: %v", msg.Type, msg.TenantID, ErrQueueFull)
		d.record("queue", "dropped")
	}
}

// Close прекращает приём событий и дожидается отправки очереди
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		for _, sink := range d.sinks {
			d.deliver(sink, msg)
		}
	}
}

func (d *Dispatcher) deliver(sink Sink, msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := sink.Send(ctx, msg); err != nil {
		d.log.Error("Notifier: sink=%s event=%s tenant=%s failed: %v", sink.Name(), msg.Type, msg.TenantID, err)
		d.record(sink.Name(), "failed")
		return
	}
	d.record(sink.Name(), "ok")
}

func (d *Dispatcher) record(sink, outcome string) {
	if d.metrics != nil {
		d.metrics.IncNotification(sink, outcome)
	}
}
