package payment

// CheckoutRequest тело запроса на создание платёжной сессии депозита
type CheckoutRequest struct {
	BookingID string `json:"bookingId"`
	Amount    string `json:"amount"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Pax       int    `json:"pax"`
}

// CheckoutResponse ответ платёжного сервиса
type CheckoutResponse struct {
	URL       string `json:"url"`
	PaymentID string `json:"paymentId,omitempty"`
}

// RefundRequest тело запроса на возврат депозита
type RefundRequest struct {
	BookingID string `json:"bookingId"`
	PaymentID string `json:"paymentId,omitempty"`
}

// Checkout результат создания платёжной сессии
type Checkout struct {
	URL       string
	PaymentID string
}
