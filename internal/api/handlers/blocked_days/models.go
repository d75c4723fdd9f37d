package blocked_days

import (
	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// BlockDayRequest HTTP request model
type BlockDayRequest struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// BlockedDayResponse HTTP response model
type BlockedDayResponse struct {
	Date   string  `json:"date"`
	Reason *string `json:"reason,omitempty"`
}

// FromDomain конвертирует закрытый день в response
func FromDomain(d *domain.ClosedDate) BlockedDayResponse {
	return BlockedDayResponse{
		Date:   d.Date.Format(domain.DateFormat),
		Reason: d.Reason,
	}
}

// FromDomainList конвертирует список закрытых дней
func FromDomainList(days []*domain.ClosedDate) []BlockedDayResponse {
	result := make([]BlockedDayResponse, 0, len(days))
	for _, d := range days {
		result = append(result, FromDomain(d))
	}
	return result
}
