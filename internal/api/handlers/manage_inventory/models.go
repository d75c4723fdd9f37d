package manage_inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// CreateZoneRequest модель запроса создания зоны
type CreateZoneRequest struct {
	Name        string  `json:"name"`
	NameES      string  `json:"nameEs"`
	NameEN      string  `json:"nameEn"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
}

// ToDomain конвертирует запрос в доменную зону
func (r CreateZoneRequest) ToDomain(tenantID uuid.UUID) *domain.Zone {
	return &domain.Zone{
		TenantID:    tenantID,
		Name:        r.Name,
		NameES:      r.NameES,
		NameEN:      r.NameEN,
		Description: r.Description,
		Capacity:    r.Capacity,
	}
}

// ZoneResponse модель зоны в ответе
type ZoneResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	NameES      string  `json:"nameEs"`
	NameEN      string  `json:"nameEn"`
	Description *string `json:"description,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

func FromDomainZone(z *domain.Zone) ZoneResponse {
	return ZoneResponse{
		ID:          z.ID,
		Name:        z.Name,
		NameES:      z.NameES,
		NameEN:      z.NameEN,
		Description: z.Description,
		Capacity:    z.Capacity,
		CreatedAt:   z.CreatedAt.Format(time.RFC3339),
	}
}

func FromDomainZones(zones []*domain.Zone) []ZoneResponse {
	result := make([]ZoneResponse, 0, len(zones))
	for _, z := range zones {
		result = append(result, FromDomainZone(z))
	}
	return result
}

// CreateTableRequest модель запроса создания стола
type CreateTableRequest struct {
	ZoneID int64  `json:"zoneId"`
	Number string `json:"number"`
	MinPax int    `json:"minPax"`
	MaxPax int    `json:"maxPax"`
}

func (r CreateTableRequest) ToDomain(tenantID uuid.UUID) *domain.Table {
	return &domain.Table{
		TenantID: tenantID,
		ZoneID:   r.ZoneID,
		Number:   r.Number,
		MinPax:   r.MinPax,
		MaxPax:   r.MaxPax,
	}
}

// TableResponse модель стола в ответе
type TableResponse struct {
	ID        int64  `json:"id"`
	ZoneID    int64  `json:"zoneId"`
	Number    string `json:"number"`
	MinPax    int    `json:"minPax"`
	MaxPax    int    `json:"maxPax"`
	CreatedAt string `json:"createdAt"`
}

func FromDomainTable(t *domain.Table) TableResponse {
	return TableResponse{
		ID:        t.ID,
		ZoneID:    t.ZoneID,
		Number:    t.Number,
		MinPax:    t.MinPax,
		MaxPax:    t.MaxPax,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

func FromDomainTables(tables []*domain.Table) []TableResponse {
	result := make([]TableResponse, 0, len(tables))
	for _, t := range tables {
		result = append(result, FromDomainTable(t))
	}
	return result
}
