package check_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

// Названия путей расчёта, попадают в ответ и метрики
const (
	StrategyAggregate = "aggregate"
	StrategyRowRead   = "rowread"
	StrategyFlexible  = "flexible"
	StrategyClosed    = "closed"
	StrategyNone      = "none"
)

// Request модель запроса доступности
type Request struct {
	TenantID  uuid.UUID
	Date      time.Time
	Turn      string
	PartySize int
}

// Response модель ответа доступности
type Response struct {
	Date      time.Time
	Turn      domain.Turn
	PartySize int
	Closed    bool   // ресторан закрыт в эту дату
	Strategy  string // каким путём получен результат
	Zones     []domain.ZoneAvailability
}
