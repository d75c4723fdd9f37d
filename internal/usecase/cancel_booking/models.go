package cancel_booking

import (
	"github.com/google/uuid"
)

// Request модель запроса на отмену бронирования
type Request struct {
	TenantID uuid.UUID // ID ресторана
	Token    uuid.UUID // Публичный токен бронирования
}

// Response модель ответа после отмены
type Response struct {
	ID               int64
	Token            uuid.UUID
	Status           string
	AlreadyCancelled bool // Повторная отмена, состояние не менялось
}
