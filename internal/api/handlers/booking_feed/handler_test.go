package booking_feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeFeed struct {
	mu       sync.Mutex
	ctx      context.Context
	tenantID uuid.UUID
	messages chan []byte
	err      error
}

func (f *fakeFeed) Stream(ctx context.Context, tenantID uuid.UUID) (<-chan []byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctx = ctx
	f.tenantID = tenantID
	return f.messages, f.err
}

func (f *fakeFeed) streamCtx() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}

func newServer(feed FeedSubscriber) *httptest.Server {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/restaurants/{restaurantId}/admin/bookings/feed", NewHandler(feed, nopLogger{}).Handle)
	return httptest.NewServer(r)
}

func TestHandler_StreamsMessages(t *testing.T) {
	feed := &fakeFeed{messages: make(chan []byte, 1)}
	srv := newServer(feed)
	defer srv.Close()

	tenant := uuid.New()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/restaurants/" + tenant.String() + "/admin/bookings/feed"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	feed.messages <- []byte(`{"type":"booking.created"}`)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"booking.created"}`, string(msg))

	feed.mu.Lock()
	assert.Equal(t, tenant, feed.tenantID)
	feed.mu.Unlock()

	// отключение клиента отменяет подписку
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return feed.streamCtx().Err() != nil
	}, 5*time.Second, 10*time.Millisecond)
}

func TestHandler_SubscribeFailure(t *testing.T) {
	srv := newServer(&fakeFeed{err: errors.New("redis down")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/restaurants/" + uuid.New().String() + "/admin/bookings/feed")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandler_InvalidRestaurant(t *testing.T) {
	srv := newServer(&fakeFeed{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/restaurants/42/admin/bookings/feed")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
