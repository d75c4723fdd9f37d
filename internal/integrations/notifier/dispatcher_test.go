package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type recordingSink struct {
	name string
	err  error

	mu       sync.Mutex
	messages []Message
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return s.err
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type countingMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *countingMetrics) IncNotification(sink, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[sink+"/"+outcome]++
}

type fakeFeed struct {
	tenant  uuid.UUID
	payload []byte
}

func (f *fakeFeed) Publish(_ context.Context, tenantID uuid.UUID, payload []byte) error {
	f.tenant = tenantID
	f.payload = payload
	return nil
}

func sampleEvent() domain.BookingEvent {
	tenant := uuid.New()
	return domain.BookingEvent{
		Type:     domain.EventBookingCreated,
		TenantID: tenant,
		Booking: &domain.Booking{
			ID:            7,
			Token:         uuid.New(),
			TenantID:      tenant,
			Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Turn:          domain.TurnDinner,
			Time:          types.MustTimeString("21:00"),
			PartySize:     4,
			Status:        domain.StatusConfirmed,
			DepositAmount: decimal.NewFromInt(20),
		},
	}
}

func TestDispatcher_FanOut(t *testing.T) {
	ok := &recordingSink{name: "ok"}
	failing := &recordingSink{name: "failing", err: errors.New("down")}
	metrics := &countingMetrics{}

	d := NewDispatcher(Config{Workers: 1, BufferSize: 4}, []Sink{failing, ok}, metrics, nopLogger{})
	d.Notify(sampleEvent())
	d.Close()

	require.Equal(t, 1, ok.count())
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, "booking.created", ok.messages[0].Type)
	assert.Equal(t, "2024-06-01", ok.messages[0].Date)
	assert.Equal(t, "20.00", ok.messages[0].Booking.DepositAmount)
	assert.Equal(t, 1, metrics.counts["ok/ok"])
	assert.Equal(t, 1, metrics.counts["failing/failed"])
}

func TestDispatcher_NotifyAfterClose(t *testing.T) {
	sink := &recordingSink{name: "s"}
	d := NewDispatcher(Config{}, []Sink{sink}, nil, nopLogger{})
	d.Close()

	assert.NotPanics(t, func() { d.Notify(sampleEvent()) })
	assert.Equal(t, 0, sink.count())
}

func TestWebhookSink(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := NewWebhookSink(srv.URL, time.Second)
	msg := NewMessage(sampleEvent())

	require.NoError(t, sink.Send(context.Background(), msg))
	assert.Equal(t, msg.Booking.Token, got.Booking.Token)
	assert.Equal(t, "dinner", got.Booking.Turn)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	assert.ErrorIs(t, NewWebhookSink(failing.URL, time.Second).Send(context.Background(), msg), ErrDelivery)
}

func TestFeedSink(t *testing.T) {
	feed := &fakeFeed{}
	event := sampleEvent()

	require.NoError(t, NewFeedSink(feed).Send(context.Background(), NewMessage(event)))

	assert.Equal(t, event.TenantID, feed.tenant)
	assert.Contains(t, string(feed.payload), `"type":"booking.created"`)
}
