package get_settings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/settings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	settings domain.Settings
	err      error
}

func (f fakeService) Get(context.Context, uuid.UUID) (domain.Settings, error) {
	return f.settings, f.err
}

func serve(svc SettingsService, path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/restaurants/{restaurantId}/admin/settings", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandler(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ClosedWeekdays = []time.Weekday{time.Sunday, time.Monday}
	path := "/api/v1/restaurants/" + uuid.New().String() + "/admin/settings"

	rec := serve(fakeService{settings: settings}, path)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.SettingsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body.EnableDeposit)
	assert.Equal(t, "5.00", body.DepositPerPerson)
	assert.Equal(t, 1440, body.MinNoticeMinutes)
	assert.Equal(t, []int{0, 1}, body.ClosedWeekdays)

	assert.Equal(t, http.StatusInternalServerError, serve(fakeService{err: errors.New("x")}, path).Code)
	assert.Equal(t, http.StatusBadRequest, serve(fakeService{}, "/api/v1/restaurants/1/admin/settings").Code)
}
