package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observation struct {
	method string
	path   string
	status int
}

type recordingMetrics struct {
	observed []observation
}

func (m *recordingMetrics) ObserveHTTPRequest(method, path string, status int, _ time.Duration) {
	m.observed = append(m.observed, observation{method: method, path: path, status: status})
}

func TestMetricsMiddleware(t *testing.T) {
	metrics := &recordingMetrics{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(metrics, "restaurant-booking"))
	r.HandleFunc("/restaurants/{restaurantId}/bookings/{token}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/restaurants/abc/bookings/def", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/ok", nil))

	require.Len(t, metrics.observed, 2)
	assert.Equal(t, observation{http.MethodGet, "/restaurants/{restaurantId}/bookings/{token}", http.StatusNotFound}, metrics.observed[0])
	assert.Equal(t, observation{http.MethodPost, "/ok", http.StatusOK}, metrics.observed[1])
}

func TestRateLimiter_Limit(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, time.Minute)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1000"))
	assert.Equal(t, http.StatusNoContent, send("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1002"))

	// другой IP имеет свой лимит
	assert.Equal(t, http.StatusNoContent, send("10.0.0.2:1000"))
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl := NewRateLimiter(1, 1, time.Minute)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	rl.getLimiter("10.0.0.1", now)
	rl.getLimiter("10.0.0.2", now.Add(50*time.Second))

	assert.Equal(t, 1, rl.Cleanup(now.Add(90*time.Second)))
	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "10.0.0.2")
}
