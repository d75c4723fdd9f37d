package create_block

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на блокировку зоны или стола
type Request struct {
	TenantID uuid.UUID // ID ресторана
	Date     time.Time // Дата блокировки
	Turn     string    // lunch | dinner
	ZoneID   int64     // Блокируемая зона
	TableID  *int64    // Стол внутри зоны; без него блокируется вся зона
	Reason   string
}

// Response модель ответа с созданной блокировкой
type Response struct {
	ID              int64
	Token           uuid.UUID
	ZoneID          int64
	AssignedTableID *int64
	PartySize       int
	CustomerName    string
	CreatedAt       time.Time
}
