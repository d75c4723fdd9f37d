package create_block

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_block"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	Date    string `json:"date"`
	Turn    string `json:"turn"`
	ZoneID  int64  `json:"zoneId"`
	TableID *int64 `json:"tableId,omitempty"`
	Reason  string `json:"reason"`
}

// BlockResponse HTTP response model
type BlockResponse struct {
	ID              int64     `json:"id"`
	Token           uuid.UUID `json:"token"`
	ZoneID          int64     `json:"zoneId"`
	AssignedTableID *int64    `json:"tableId,omitempty"`
	PartySize       int       `json:"pax"`
	Name            string    `json:"name"`
	CreatedAt       string    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBlockRequest) ToUseCaseRequest(tenantID uuid.UUID) (*createBlock.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &createBlock.Request{
		TenantID: tenantID,
		Date:     date,
		Turn:     r.Turn,
		ZoneID:   r.ZoneID,
		TableID:  r.TableID,
		Reason:   r.Reason,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response) *BlockResponse {
	return &BlockResponse{
		ID:              resp.ID,
		Token:           resp.Token,
		ZoneID:          resp.ZoneID,
		AssignedTableID: resp.AssignedTableID,
		PartySize:       resp.PartySize,
		Name:            resp.CustomerName,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
