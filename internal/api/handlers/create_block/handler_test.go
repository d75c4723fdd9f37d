package create_block

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createBlock "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_block"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	got *createBlock.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBlock.Request) (*createBlock.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createBlock.Response{
		ID:              10,
		ZoneID:          req.ZoneID,
		AssignedTableID: req.TableID,
		PartySize:       6,
		CustomerName:    "BLOQUEO MESA T1: Rota",
		CreatedAt:       time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}, nil
}

func serve(uc CreateBlockUseCase, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/restaurants/{restaurantId}/admin/blocks", NewHandler(uc, nopLogger{}).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, strings.NewReader(body)))
	return rec
}

func TestHandler(t *testing.T) {
	tenant := uuid.New()
	uc := &fakeUseCase{}

	rec := serve(uc, "/api/v1/restaurants/"+tenant.String()+"/admin/blocks",
		`{"date":"2024-06-01","turn":"dinner","zoneId":1,"tableId":11,"reason":"Rota"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, tenant, uc.got.TenantID)
	assert.Equal(t, ptr.Ptr(int64(11)), uc.got.TableID)
	assert.Equal(t, "Rota", uc.got.Reason)

	var body BlockResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "BLOQUEO MESA T1: Rota", body.Name)
	assert.Equal(t, 6, body.PartySize)
}

func TestHandler_Errors(t *testing.T) {
	path := "/api/v1/restaurants/" + uuid.New().String() + "/admin/blocks"
	valid := `{"date":"2024-06-01","turn":"lunch","zoneId":1,"reason":"x"}`

	cases := map[error]int{
		createBlock.ErrInvalidInput:  http.StatusBadRequest,
		createBlock.ErrZoneNotFound:  http.StatusNotFound,
		createBlock.ErrTableNotFound: http.StatusNotFound,
		createBlock.ErrConflict:      http.StatusConflict,
		errors.New("boom"):           http.StatusInternalServerError,
	}
	for err, code := range cases {
		assert.Equal(t, code, serve(&fakeUseCase{err: err}, path, valid).Code, err.Error())
	}

	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, path, `{"date":"June"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, path, `[`).Code)
}
