package payment_webhook

// Статусы платежа от платёжного шлюза
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusExpired = "expired"
)

// PaymentEventRequest уведомление платёжного шлюза
type PaymentEventRequest struct {
	RestaurantID string `json:"restaurantId"`
	BookingToken string `json:"bookingToken"`
	PaymentID    string `json:"paymentId"`
	Status       string `json:"status"`
}

// PaymentEventResponse результат обработки уведомления
type PaymentEventResponse struct {
	Status  string `json:"status"`
	Applied bool   `json:"applied"`
}
