package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
)

// Client клиент внешнего платёжного сервиса (webhook)
type Client struct {
	webhookURL string
	refundURL  string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр платёжного клиента
func NewClient(webhookURL, refundURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		webhookURL: webhookURL,
		refundURL:  refundURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// CreateCheckout запрашивает платёжную сессию для депозита бронирования
func (c *Client) CreateCheckout(ctx context.Context, booking *domain.Booking) (*Checkout, error) {
	if c.webhookURL == "" {
		return nil, ErrNotConfigured
	}

	body := CheckoutRequest{
		BookingID: booking.Token.String(),
		Amount:    booking.DepositAmount.StringFixed(2),
		Name:      booking.CustomerName,
		Email:     booking.CustomerEmail,
		Phone:     booking.CustomerPhone,
		Date:      booking.Date.Format(domain.DateFormat),
		Time:      booking.Time.String(),
		Pax:       booking.PartySize,
	}

	var resp CheckoutResponse
	if err := c.post(ctx, c.webhookURL, body, &resp); err != nil {
		return nil, err
	}

	if resp.URL == "" {
		return nil, fmt.Errorf("%w: empty checkout url", ErrInvalidResponse)
	}

	c.log.Info("Payment checkout created for booking token=%s amount=%s", booking.Token, body.Amount)
	return &Checkout{URL: resp.URL, PaymentID: resp.PaymentID}, nil
}

// Refund запрашивает возврат депозита
func (c *Client) Refund(ctx context.Context, booking *domain.Booking) error {
	if c.refundURL == "" {
		return ErrNotConfigured
	}

	body := RefundRequest{
		BookingID: booking.Token.String(),
		PaymentID: ptr.Value(booking.PaymentID),
	}

	if err := c.post(ctx, c.refundURL, body, nil); err != nil {
		return err
	}

	c.log.Info("Payment refund requested for booking token=%s", booking.Token)
	return nil
}

func (c *Client) post(ctx context.Context, url string, body interface{}, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	case http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
