package check_availability

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
	checkAvailability "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/check_availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got  *checkAvailability.Request
	resp *checkAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	f.got = req
	return f.resp, f.err
}

func serve(uc CheckAvailabilityUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/restaurants/{restaurantId}/availability", NewHandler(uc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_OK(t *testing.T) {
	tenant := uuid.New()
	uc := &fakeUseCase{resp: &checkAvailability.Response{
		Date:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Turn:      domain.TurnDinner,
		PartySize: 4,
		Strategy:  checkAvailability.StrategyAggregate,
		Zones:     []domain.ZoneAvailability{{ZoneID: 1, NameES: "Terraza", NameEN: "Terrace", AvailableSlots: 2}},
	}}

	rec := serve(uc, "/api/v1/restaurants/"+tenant.String()+"/availability?date=2024-06-01&turn=dinner&pax=4")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, tenant, uc.got.TenantID)
	assert.Equal(t, 4, uc.got.PartySize)
	assert.Equal(t, "dinner", uc.got.Turn)

	var body AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2024-06-01", body.Date)
	assert.Equal(t, "aggregate", body.Strategy)
	require.Len(t, body.Zones, 1)
	assert.Equal(t, ZoneResponse{ZoneID: 1, NameES: "Terraza", NameEN: "Terrace", AvailableSlots: 2}, body.Zones[0])
}

func TestHandler_BadRequests(t *testing.T) {
	tenant := uuid.New().String()
	targets := []string{
		"/api/v1/restaurants/not-a-uuid/availability?date=2024-06-01&turn=dinner&pax=4",
		"/api/v1/restaurants/" + tenant + "/availability?turn=dinner&pax=4",
		"/api/v1/restaurants/" + tenant + "/availability?date=01-06-2024&turn=dinner&pax=4",
		"/api/v1/restaurants/" + tenant + "/availability?date=2024-06-01&turn=dinner&pax=four",
	}
	for _, target := range targets {
		uc := &fakeUseCase{}
		rec := serve(uc, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Nil(t, uc.got, target)
	}
}

func TestHandler_UseCaseErrors(t *testing.T) {
	target := "/api/v1/restaurants/" + uuid.New().String() + "/availability?date=2024-06-01&turn=brunch&pax=4"

	rec := serve(&fakeUseCase{err: checkAvailability.ErrInvalidInput}, target)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeUseCase{err: errors.New("boom")}, target)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
