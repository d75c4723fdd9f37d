package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiver(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncAvailability("aggregate", "ok")
		m.IncBookingCreated("confirmed")
		m.IncNotification("webhook", "ok")
		m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
		m.ObserveDBQuery("select", time.Millisecond, nil)
	})
	assert.Nil(t, m.Registry())
}

func TestMetrics_Counters(t *testing.T) {
	m := New("restaurant-booking")

	m.IncAvailability("rowread", "ok")
	m.IncAvailability("rowread", "ok")
	m.IncBookingCreated("pending_payment")
	m.ObserveDBQuery("insert", time.Millisecond, errors.New("boom"))

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	values := make(map[string]float64)
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if metric.GetCounter() != nil {
				values[mf.GetName()] += metric.GetCounter().GetValue()
			}
		}
	}

	assert.Equal(t, 2.0, values["availability_checks_total"])
	assert.Equal(t, 1.0, values["bookings_created_total"])
	assert.Equal(t, 1.0, values["db_query_errors_total"])
}

func TestMetrics_Handler(t *testing.T) {
	m := New("restaurant-booking")
	m.IncBookingCreated("confirmed")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookings_created_total")
}
