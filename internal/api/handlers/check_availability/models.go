package check_availability

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	checkAvailability "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/check_availability"
)

// ZoneResponse HTTP модель доступной зоны
type ZoneResponse struct {
	ZoneID         int64  `json:"zoneId"`
	NameES         string `json:"nameEs"`
	NameEN         string `json:"nameEn"`
	AvailableSlots int    `json:"availableSlots"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date      string         `json:"date"`
	Turn      string         `json:"turn"`
	PartySize int            `json:"pax"`
	Closed    bool           `json:"closed"`
	Strategy  string         `json:"strategy"`
	Zones     []ZoneResponse `json:"zones"`
}

// ToUseCaseRequest конвертирует query параметры в модель use case
func ToUseCaseRequest(tenantID uuid.UUID, dateStr, turn, paxStr string) (*checkAvailability.Request, error) {
	date, err := handlers.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	pax, err := strconv.Atoi(paxStr)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		TenantID:  tenantID,
		Date:      date,
		Turn:      turn,
		PartySize: pax,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	zones := make([]ZoneResponse, 0, len(resp.Zones))
	for _, z := range resp.Zones {
		zones = append(zones, ZoneResponse{
			ZoneID:         z.ZoneID,
			NameES:         z.NameES,
			NameEN:         z.NameEN,
			AvailableSlots: z.AvailableSlots,
		})
	}

	return &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Turn:      string(resp.Turn),
		PartySize: resp.PartySize,
		Closed:    resp.Closed,
		Strategy:  resp.Strategy,
		Zones:     zones,
	}
}
