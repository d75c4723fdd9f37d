package manage_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	calls  []string
	update *models.UpdateBookingRequest
	err    error
}

func (f *fakeService) result(call string, id int64, status string) (*models.BookingResponse, error) {
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, Status: status}, nil
}

func (f *fakeService) Update(_ context.Context, _ uuid.UUID, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	f.update = req
	return f.result("update", id, "confirmed")
}

func (f *fakeService) Delete(_ context.Context, _ uuid.UUID, _ int64) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

func (f *fakeService) CheckIn(_ context.Context, _ uuid.UUID, id int64) (*models.BookingResponse, error) {
	return f.result("check-in", id, "completed")
}

func (f *fakeService) MarkNoShow(_ context.Context, _ uuid.UUID, id int64) (*models.BookingResponse, error) {
	return f.result("no-show", id, "cancelled")
}

func router(svc BookingService) *mux.Router {
	h := NewHandler(svc, nopLogger{})
	r := mux.NewRouter()
	admin := r.PathPrefix("/api/v1/restaurants/{restaurantId}/admin").Subrouter()
	admin.HandleFunc("/bookings/{bookingId}", h.HandleUpdate).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}", h.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/check-in", h.HandleCheckIn).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}/no-show", h.HandleNoShow).Methods(http.MethodPost)
	return r
}

func do(svc BookingService, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	router(svc).ServeHTTP(rec, req)
	return rec
}

func TestHandler_Routes(t *testing.T) {
	base := "/api/v1/restaurants/" + uuid.New().String() + "/admin/bookings/9"
	svc := &fakeService{}

	rec := do(svc, http.MethodPatch, base, `{"status":"confirmed","tableId":4,"pax":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "confirmed", *svc.update.Status)
	assert.Equal(t, int64(4), *svc.update.AssignedTableID)
	assert.Equal(t, 3, *svc.update.PartySize)

	rec = do(svc, http.MethodPost, base+"/check-in", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "completed", body.Status)
	assert.Equal(t, int64(9), body.ID)

	rec = do(svc, http.MethodPost, base+"/no-show", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(svc, http.MethodDelete, base, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	assert.Equal(t, []string{"update", "check-in", "no-show", "delete"}, svc.calls)
}

func TestHandler_Errors(t *testing.T) {
	base := "/api/v1/restaurants/" + uuid.New().String() + "/admin/bookings/"

	cases := map[error]int{
		bookings.ErrBookingNotFound:   http.StatusNotFound,
		bookings.ErrTableNotFound:     http.StatusNotFound,
		bookings.ErrInvalidInput:      http.StatusBadRequest,
		bookings.ErrInvalidTransition: http.StatusUnprocessableEntity,
		bookings.ErrConflict:          http.StatusConflict,
		errors.New("boom"):            http.StatusInternalServerError,
	}
	for err, code := range cases {
		rec := do(&fakeService{err: err}, http.MethodPost, base+"1/check-in", "")
		assert.Equal(t, code, rec.Code, err.Error())
	}

	svc := &fakeService{}
	assert.Equal(t, http.StatusBadRequest, do(svc, http.MethodPost, base+"0/no-show", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(svc, http.MethodPatch, base+"1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(svc, http.MethodPatch, base+"1", `{"pax":"x"}`).Code)
	assert.Empty(t, svc.calls)
}
