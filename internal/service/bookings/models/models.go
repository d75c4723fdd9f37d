package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidTurn возвращается при некорректной смене
	ErrInvalidTurn = errors.New("invalid turn")
)

// Request модели

// ListBookingsRequest запрос списка бронирований на дату
type ListBookingsRequest struct {
	TenantID uuid.UUID
	Date     time.Time
	Turn     *string
	Status   *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		TenantID: r.TenantID,
		Date:     domain.DateOnly(r.Date),
	}

	if r.Turn != nil {
		turn := domain.Turn(*r.Turn)
		if !turn.IsValid() {
			return filter, ErrInvalidTurn
		}
		filter.Turn = &turn
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateBookingRequest частичное обновление бронирования персоналом
type UpdateBookingRequest struct {
	Date            *string          `json:"date,omitempty"`
	Turn            *string          `json:"turn,omitempty"`
	Time            *string          `json:"time,omitempty"`
	PartySize       *int             `json:"pax,omitempty"`
	ZoneID          *int64           `json:"zoneId,omitempty"`
	AssignedTableID *int64           `json:"tableId,omitempty"`
	UnassignTable   bool             `json:"unassignTable,omitempty"`
	CustomerName    *string          `json:"name,omitempty"`
	CustomerEmail   *string          `json:"email,omitempty"`
	CustomerPhone   *string          `json:"phone,omitempty"`
	Comments        *string          `json:"comments,omitempty"`
	Status          *string          `json:"status,omitempty"`
	DepositAmount   *decimal.Decimal `json:"depositAmount,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64     `json:"id"`
	Token            uuid.UUID `json:"token"`
	Date             string    `json:"date"` // "2024-06-01"
	Turn             string    `json:"turn"`
	Time             string    `json:"time"` // "21:00"
	PartySize        int       `json:"pax"`
	ZoneID           *int64    `json:"zoneId,omitempty"`
	ZoneNameES       *string   `json:"zoneNameEs,omitempty"`
	ZoneNameEN       *string   `json:"zoneNameEn,omitempty"`
	AssignedTableID  *int64    `json:"tableId,omitempty"`
	CustomerName     string    `json:"name"`
	CustomerEmail    string    `json:"email"`
	CustomerPhone    string    `json:"phone"`
	Comments         *string   `json:"comments,omitempty"`
	Status           string    `json:"status"`
	DepositAmount    string    `json:"depositAmount"`
	ConsumesCapacity bool      `json:"consumesCapacity"`
	IsManual         bool      `json:"isManual"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Converters

// FromDomainBooking конвертирует доменную модель в response
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:               b.ID,
		Token:            b.Token,
		Date:             b.Date.Format(domain.DateFormat),
		Turn:             string(b.Turn),
		Time:             b.Time.String(),
		PartySize:        b.PartySize,
		ZoneID:           b.ZoneID,
		ZoneNameES:       b.ZoneNameES,
		ZoneNameEN:       b.ZoneNameEN,
		AssignedTableID:  b.AssignedTableID,
		CustomerName:     b.CustomerName,
		CustomerEmail:    b.CustomerEmail,
		CustomerPhone:    b.CustomerPhone,
		Comments:         b.Comments,
		Status:           string(b.Status),
		DepositAmount:    b.DepositAmount.StringFixed(2),
		ConsumesCapacity: b.ConsumesCapacity,
		IsManual:         b.IsManual,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список доменных моделей в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	list := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		list = append(list, *FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: list, Total: len(list)}
}

// ToDomainBookingStatus конвертирует строку в статус
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}
