package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/psqlbuilder"
)

// occupiedSubquery условие "стол занят в смену"
const occupiedSubquery = `NOT EXISTS (
	SELECT 1 FROM bookings b
	WHERE b.tenant_id = t.tenant_id
	  AND b.assigned_table_id = t.id
	  AND b.booking_date = ?
	  AND b.turn = ?
	  AND b.consumes_capacity
	  AND b.status NOT IN (?, ?)
)`

// Repository считает свободные столы по зонам одним агрегирующим запросом
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CountFreeTablesByZone возвращает зоны с количеством свободных подходящих столов.
// Зоны без свободных столов в результат не попадают. Блокировки зон не учитываются.
func (r *Repository) CountFreeTablesByZone(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn, partySize int) ([]domain.ZoneAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := countFreeTablesQuery(tenantID, date, turn, partySize).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountFreeTablesByZone - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CountFreeTablesByZone - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.ZoneAvailability, 0)
	for rows.Next() {
		var zone domain.Zone
		var free int
		if err := rows.Scan(&zone.ID, &zone.Name, &zone.NameES, &zone.NameEN, &free); err != nil {
			return nil, fmt.Errorf("%w: CountFreeTablesByZone - scan row: %v", ErrScanRow, err)
		}
		result = append(result, domain.ZoneAvailability{
			ZoneID:         zone.ID,
			NameES:         zone.LocalizedName("es"),
			NameEN:         zone.LocalizedName("en"),
			AvailableSlots: free,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CountFreeTablesByZone - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func countFreeTablesQuery(tenantID uuid.UUID, date time.Time, turn domain.Turn, partySize int) squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"z.id",
		"z.name",
		"z.name_es",
		"z.name_en",
		"COUNT(t.id) AS free_tables",
	).
		From("zones z").
		Join("tables t ON t.zone_id = z.id AND t.tenant_id = z.tenant_id").
		Where(squirrel.Eq{"z.tenant_id": tenantID}).
		Where(squirrel.LtOrEq{"t.min_pax": partySize}).
		Where(squirrel.GtOrEq{"t.max_pax": partySize}).
		Where(squirrel.Expr(occupiedSubquery,
			date.Format(domain.DateFormat),
			turn,
			domain.StatusCancelled,
			domain.StatusWaitingList,
		)).
		GroupBy("z.id", "z.name", "z.name_es", "z.name_en").
		Having("COUNT(t.id) > 0").
		OrderBy("z.id ASC")
}
