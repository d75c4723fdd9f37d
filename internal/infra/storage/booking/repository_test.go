package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/pgerrors"
)

type recordingExecutor struct {
	query    string
	args     []interface{}
	queryErr error
}

func (e *recordingExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	e.query, e.args = query, args
	return nil, e.queryErr
}

func (e *recordingExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	e.query, e.args = query, args
	return nil, e.queryErr
}

func (e *recordingExecutor) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestListBlockedZoneIDs_IncludesTableBlocks(t *testing.T) {
	tenantID := uuid.New()
	exec := &recordingExecutor{queryErr: errors.New("stop")}
	repo := NewRepository(exec)

	_, err := repo.ListBlockedZoneIDs(context.Background(), tenantID, testDate, domain.TurnLunch)
	require.ErrorIs(t, err, ErrExecQuery)

	assert.Contains(t, exec.query, "SELECT DISTINCT zone_id FROM bookings")
	assert.Contains(t, exec.query, "status = $")
	assert.Contains(t, exec.query, "zone_id IS NOT NULL")
	assert.NotContains(t, exec.query, "assigned_table_id")
	assert.Contains(t, exec.args, domain.StatusBlocked)
	assert.Contains(t, exec.args, "2024-06-01")
}

func TestListOccupiedTableIDs_SerializationFailure(t *testing.T) {
	exec := &recordingExecutor{queryErr: &pq.Error{Code: pgerrors.SerializationFailure}}
	repo := NewRepository(exec)

	_, err := repo.ListOccupiedTableIDs(context.Background(), uuid.New(), testDate, domain.TurnDinner)

	require.ErrorIs(t, err, ErrConflict)
	assert.True(t, pgerrors.IsSerializationFailure(err))
	assert.NotErrorIs(t, err, ErrExecQuery)
}

func TestListOccupiedTableIDs_ExecError(t *testing.T) {
	exec := &recordingExecutor{queryErr: errors.New("connection reset")}
	repo := NewRepository(exec)

	_, err := repo.ListOccupiedTableIDs(context.Background(), uuid.New(), testDate, domain.TurnDinner)

	require.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotContains(t, exec.query, "FOR UPDATE")
}
