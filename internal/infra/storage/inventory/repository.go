package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/psqlbuilder"
)

// Repository репозиторий зон и столов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListZones возвращает все зоны ресторана по возрастанию id
func (r *Repository) ListZones(ctx context.Context, tenantID uuid.UUID) ([]*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "name_es", "name_en", "description", "capacity", "created_at").
		From("zones").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListZones - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListZones - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	zones := make([]*domain.Zone, 0)
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListZones - scan row: %v", ErrScanRow, err)
		}
		zones = append(zones, zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListZones - rows error: %v", ErrScanRow, err)
	}

	return zones, nil
}

// GetZone получает зону по id
func (r *Repository) GetZone(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "tenant_id", "name", "name_es", "name_en", "description", "capacity", "created_at").
		From("zones").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetZone - build select query: %v", ErrBuildQuery, err)
	}

	zone, err := scanZone(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetZone - scan zone: %v", ErrScanRow, err)
	}

	return zone, nil
}

// CreateZone создает зону
func (r *Repository) CreateZone(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("zones").
		Columns("tenant_id", "name", "name_es", "name_en", "description", "capacity").
		Values(zone.TenantID, zone.Name, zone.NameES, zone.NameEN, zone.Description, zone.Capacity).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateZone - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&zone.ID, &zone.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateZone - execute insert: %v", ErrExecQuery, err)
	}

	return zone, nil
}

// DeleteZone удаляет зону; столы зоны удаляются каскадно
func (r *Repository) DeleteZone(ctx context.Context, tenantID uuid.UUID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("zones").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteZone - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteZone - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteZone - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrZoneNotFound
	}

	return nil
}

// ListTables возвращает столы ресторана, опционально только одной зоны
func (r *Repository) ListTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64) ([]*domain.Table, error) {
	selectBuilder := selectTables().Where(squirrel.Eq{"tenant_id": tenantID})
	if zoneID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"zone_id": *zoneID})
	}

	return r.queryTables(ctx, "ListTables", selectBuilder.OrderBy("id ASC"))
}

// ListSuitableTables возвращает столы, вмещающие partySize (min_pax <= p <= max_pax),
// по возрастанию id
func (r *Repository) ListSuitableTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64, partySize int) ([]*domain.Table, error) {
	selectBuilder := selectTables().
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.LtOrEq{"min_pax": partySize}).
		Where(squirrel.GtOrEq{"max_pax": partySize})
	if zoneID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"zone_id": *zoneID})
	}

	return r.queryTables(ctx, "ListSuitableTables", selectBuilder.OrderBy("id ASC"))
}

// GetTable получает стол по id
func (r *Repository) GetTable(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectTables().
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetTable - build select query: %v", ErrBuildQuery, err)
	}

	table, err := scanTable(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTable - scan table: %v", ErrScanRow, err)
	}

	return table, nil
}

// CreateTable создает стол
func (r *Repository) CreateTable(ctx context.Context, table *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tables").
		Columns("tenant_id", "zone_id", "number", "min_pax", "max_pax").
		Values(table.TenantID, table.ZoneID, table.Number, table.MinPax, table.MaxPax).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateTable - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&table.ID, &table.CreatedAt); err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: CreateTable - zone id=%d: %v", ErrInvalidReference, table.ZoneID, err)
		}
		return nil, fmt.Errorf("%w: CreateTable - execute insert: %v", ErrExecQuery, err)
	}

	return table, nil
}

// DeleteTable удаляет стол. Ссылки из бронирований не трогаются.
func (r *Repository) DeleteTable(ctx context.Context, tenantID uuid.UUID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("tables").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteTable - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteTable - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteTable - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrTableNotFound
	}

	return nil
}

func (r *Repository) queryTables(ctx context.Context, method string, selectBuilder squirrel.SelectBuilder) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		table, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, method, err)
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return tables, nil
}

func selectTables() squirrel.SelectBuilder {
	return psqlbuilder.Select("id", "tenant_id", "zone_id", "number", "min_pax", "max_pax", "created_at").
		From("tables")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanZone(row rowScanner) (*domain.Zone, error) {
	var (
		zone        domain.Zone
		description sql.NullString
		capacity    sql.NullInt64
	)

	if err := row.Scan(
		&zone.ID,
		&zone.TenantID,
		&zone.Name,
		&zone.NameES,
		&zone.NameEN,
		&description,
		&capacity,
		&zone.CreatedAt,
	); err != nil {
		return nil, err
	}

	if description.Valid {
		zone.Description = &description.String
	}
	if capacity.Valid {
		c := int(capacity.Int64)
		zone.Capacity = &c
	}

	return &zone, nil
}

func scanTable(row rowScanner) (*domain.Table, error) {
	var table domain.Table
	if err := row.Scan(
		&table.ID,
		&table.TenantID,
		&table.ZoneID,
		&table.Number,
		&table.MinPax,
		&table.MaxPax,
		&table.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &table, nil
}
