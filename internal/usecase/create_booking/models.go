package create_booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID      uuid.UUID // ID ресторана
	Date          time.Time // Дата визита (без времени)
	Turn          string    // lunch | dinner
	Time          string    // Время визита "HH:MM"
	PartySize     int       // Количество гостей
	ZoneID        *int64    // Выбранная зона (опционально)
	TableID       *int64    // Заранее выбранный стол (опционально, только персонал)
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Comments      *string

	IsWaitlist       bool    // Запись в лист ожидания
	IsManual         bool    // Бронирование создаёт персонал
	Status           *string // Принудительный статус, только при IsManual
	ConsumesCapacity *bool   // По умолчанию true
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	Token           uuid.UUID
	Status          string
	ZoneID          *int64
	AssignedTableID *int64
	DepositAmount   decimal.Decimal
	CheckoutURL     *string // Ссылка на оплату депозита
	Message         *string // Сообщение для гостя при ручном подтверждении
	CreatedAt       time.Time
}
