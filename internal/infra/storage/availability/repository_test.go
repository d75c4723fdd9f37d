package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
)

func TestCountFreeTablesQuery(t *testing.T) {
	tenantID := uuid.New()
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := countFreeTablesQuery(tenantID, date, domain.TurnDinner, 4).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "FROM zones z JOIN tables t ON t.zone_id = z.id AND t.tenant_id = z.tenant_id")
	assert.Contains(t, query, "z.tenant_id = $1")
	assert.Contains(t, query, "t.min_pax <= $2")
	assert.Contains(t, query, "t.max_pax >= $3")
	assert.Contains(t, query, "NOT EXISTS (")
	assert.Contains(t, query, "AND b.booking_date = $4")
	assert.Contains(t, query, "AND b.turn = $5")
	assert.Contains(t, query, "AND b.consumes_capacity")
	assert.Contains(t, query, "AND b.status NOT IN ($6, $7)")
	assert.Contains(t, query, "GROUP BY z.id, z.name, z.name_es, z.name_en")
	assert.Contains(t, query, "HAVING COUNT(t.id) > 0")
	assert.Contains(t, query, "ORDER BY z.id ASC")
	assert.NotContains(t, query, "?")

	assert.Equal(t, []interface{}{
		tenantID.String(),
		4,
		4,
		"2024-06-01",
		domain.TurnDinner,
		domain.StatusCancelled,
		domain.StatusWaitingList,
	}, args)
}
