package closure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/psqlbuilder"
)

// Repository репозиторий закрытых дат
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// IsClosed проверяет, закрыта ли конкретная дата
func (r *Repository) IsClosed(ctx context.Context, tenantID uuid.UUID, date time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		Prefix("SELECT EXISTS (").
		From("closed_dates").
		Where(squirrel.Eq{"tenant_id": tenantID, "date": date.Format(domain.DateFormat)}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsClosed - build select query: %v", ErrBuildQuery, err)
	}

	var exists bool
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: IsClosed - scan: %v", ErrScanRow, err)
	}

	return exists, nil
}

// Create закрывает дату
func (r *Repository) Create(ctx context.Context, closed *domain.ClosedDate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("closed_dates").
		Columns("tenant_id", "date", "reason").
		Values(closed.TenantID, closed.Date.Format(domain.DateFormat), closed.Reason).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&closed.CreatedAt); err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return ErrAlreadyClosed
		}
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete открывает ранее закрытую дату
func (r *Repository) Delete(ctx context.Context, tenantID uuid.UUID, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("closed_dates").
		Where(squirrel.Eq{"tenant_id": tenantID, "date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNotClosed
	}

	return nil
}

// ListFrom возвращает закрытые даты начиная с from (включительно) по возрастанию
func (r *Repository) ListFrom(ctx context.Context, tenantID uuid.UUID, from time.Time) ([]*domain.ClosedDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("tenant_id", "date", "reason", "created_at").
		From("closed_dates").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListFrom - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.ClosedDate, 0)
	for rows.Next() {
		var (
			closed domain.ClosedDate
			reason sql.NullString
		)
		if err := rows.Scan(&closed.TenantID, &closed.Date, &reason, &closed.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListFrom - scan row: %v", ErrScanRow, err)
		}
		if reason.Valid {
			closed.Reason = &reason.String
		}
		closed.Date = domain.DateOnly(closed.Date)
		result = append(result, &closed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListFrom - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}
