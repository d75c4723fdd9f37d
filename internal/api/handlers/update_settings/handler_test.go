package update_settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	settingsService "github.com/m04kA/SMC-RestaurantBooking/internal/service/settings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	patch map[string]string
	err   error
}

func (f *fakeService) Update(_ context.Context, _ uuid.UUID, patch map[string]string) (domain.Settings, error) {
	f.patch = patch
	if f.err != nil {
		return domain.Settings{}, f.err
	}
	return domain.DefaultSettings(), nil
}

func serve(svc SettingsService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/restaurants/{restaurantId}/admin/settings", NewHandler(svc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	path := "/api/v1/restaurants/" + uuid.New().String() + "/admin/settings"
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, path, strings.NewReader(body)))
	return rec
}

func TestToPatch(t *testing.T) {
	req := UpdateSettingsRequest{
		"enable_deposit":            []byte(`false`),
		"deposit_per_person":        []byte(`7.5`),
		"manual_validation_message": []byte(`"Espere"`),
		"closed_weekdays":           []byte(`[0, 1]`),
	}

	patch, err := req.ToPatch()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"enable_deposit":            "false",
		"deposit_per_person":        "7.5",
		"manual_validation_message": "Espere",
		"closed_weekdays":           "0,1",
	}, patch)

	_, err = UpdateSettingsRequest{"enable_deposit": []byte(`null`)}.ToPatch()
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = UpdateSettingsRequest{"closed_weekdays": []byte(`{"a":1}`)}.ToPatch()
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestHandler(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		svc := &fakeService{}
		rec := serve(svc, `{"min_notice_minutes": 60}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, map[string]string{"min_notice_minutes": "60"}, svc.patch)
		assert.Contains(t, rec.Body.String(), `"depositPerPerson":"5.00"`)
	})

	t.Run("invalid value", func(t *testing.T) {
		svc := &fakeService{err: settingsService.ErrInvalidInput}
		assert.Equal(t, http.StatusBadRequest, serve(svc, `{"enable_deposit": "maybe"}`).Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{`).Code)
	})

	t.Run("storage failure", func(t *testing.T) {
		svc := &fakeService{err: errors.New("db down")}
		assert.Equal(t, http.StatusInternalServerError, serve(svc, `{"flexible_capacity": true}`).Code)
	})
}
