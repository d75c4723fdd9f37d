package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		Token:         uuid.MustParse("6f1c8a3e-8c2b-4f7e-9a51-0d4a2b9c7e10"),
		Date:          time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Time:          types.MustTimeString("21:00"),
		PartySize:     4,
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "600111222",
		DepositAmount: decimal.NewFromInt(20),
	}
}

func TestClient_CreateCheckout(t *testing.T) {
	var got CheckoutRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(CheckoutResponse{URL: "https://pay.example/s/1", PaymentID: "pi_1"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second, nopLogger{})

	checkout, err := client.CreateCheckout(context.Background(), sampleBooking())
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example/s/1", checkout.URL)
	assert.Equal(t, "pi_1", checkout.PaymentID)
	assert.Equal(t, "20.00", got.Amount)
	assert.Equal(t, "2024-06-01", got.Date)
	assert.Equal(t, "21:00", got.Time)
	assert.Equal(t, 4, got.Pax)
	assert.Equal(t, "6f1c8a3e-8c2b-4f7e-9a51-0d4a2b9c7e10", got.BookingID)
}

func TestClient_CreateCheckout_Errors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		client := NewClient("", "", time.Second, nopLogger{})
		_, err := client.CreateCheckout(context.Background(), sampleBooking())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", time.Second, nopLogger{})
		_, err := client.CreateCheckout(context.Background(), sampleBooking())
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})

	t.Run("empty url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		client := NewClient(srv.URL, "", time.Second, nopLogger{})
		_, err := client.CreateCheckout(context.Background(), sampleBooking())
		assert.ErrorIs(t, err, ErrInvalidResponse)
	})
}

func TestClient_Refund(t *testing.T) {
	var got RefundRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient("", srv.URL, time.Second, nopLogger{})
	booking := sampleBooking()
	paymentID := "pi_42"
	booking.PaymentID = &paymentID

	require.NoError(t, client.Refund(context.Background(), booking))
	assert.Equal(t, "pi_42", got.PaymentID)
}
