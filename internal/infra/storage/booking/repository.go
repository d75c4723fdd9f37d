package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/pgerrors"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.token",
	"b.tenant_id",
	"b.booking_date",
	"b.turn",
	"b.booking_time",
	"b.party_size",
	"b.zone_id",
	"b.assigned_table_id",
	"b.customer_name",
	"b.customer_email",
	"b.customer_phone",
	"b.comments",
	"b.status",
	"b.deposit_amount",
	"b.consumes_capacity",
	"b.is_manual",
	"b.payment_id",
	"z.name_es",
	"z.name_en",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение уникального индекса по столу возвращается как ErrConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.Token == uuid.Nil {
		booking.Token = uuid.New()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"token",
			"tenant_id",
			"booking_date",
			"turn",
			"booking_time",
			"party_size",
			"zone_id",
			"assigned_table_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"comments",
			"status",
			"deposit_amount",
			"consumes_capacity",
			"is_manual",
			"payment_id",
		).
		Values(
			booking.Token,
			booking.TenantID,
			dateParam(booking.Date),
			booking.Turn,
			booking.Time,
			booking.PartySize,
			booking.ZoneID,
			booking.AssignedTableID,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Comments,
			booking.Status,
			booking.DepositAmount,
			booking.ConsumesCapacity,
			booking.IsManual,
			booking.PaymentID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrConflict, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID в пределах ресторана
func (r *Repository) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"b.tenant_id": tenantID, "b.id": id})
}

// GetByToken получает бронирование по публичному токену
func (r *Repository) GetByToken(ctx context.Context, tenantID uuid.UUID, token uuid.UUID) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByToken", squirrel.Eq{"b.tenant_id": tenantID, "b.token": token})
}

func (r *Repository) getOne(ctx context.Context, method string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBookings().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, method, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, method, err)
	}

	return booking, nil
}

// ListByDate получает бронирования ресторана на дату.
// Лист ожидания сортируется по времени создания (FIFO), остальные по времени бронирования.
func (r *Repository) ListByDate(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectBookings().
		Where(squirrel.Eq{"b.tenant_id": filter.TenantID, "b.booking_date": dateParam(filter.Date)})

	if filter.Turn != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.turn": *filter.Turn})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	if filter.Status != nil && *filter.Status == domain.StatusWaitingList {
		selectBuilder = selectBuilder.OrderBy("b.created_at ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.booking_time ASC", "b.created_at ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListActiveByDateTurn возвращает бронирования смены, которые могут занимать столы
// (статус не cancelled и не waiting_list). Используется построчным расчётом доступности.
func (r *Repository) ListActiveByDateTurn(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectBookings().
		Where(squirrel.Eq{"b.tenant_id": tenantID, "b.booking_date": dateParam(date), "b.turn": turn}).
		Where(squirrel.NotEq{"b.status": statusStrings(domain.NonOccupyingStatuses)}).
		OrderBy("b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDateTurn - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDateTurn - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListOccupiedTableIDs возвращает id столов, занятых в смену.
// Внутри транзакции строки блокируются (FOR UPDATE).
func (r *Repository) ListOccupiedTableIDs(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("assigned_table_id").
		From("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "booking_date": dateParam(date), "turn": turn}).
		Where(squirrel.NotEq{"assigned_table_id": nil}).
		Where(squirrel.Eq{"consumes_capacity": true}).
		Where(squirrel.NotEq{"status": statusStrings(domain.NonOccupyingStatuses)}).
		OrderBy("assigned_table_id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupiedTableIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryIDs(ctx, executor, "ListOccupiedTableIDs", query, args)
}

// ListBlockedZoneIDs возвращает id зон, в которых есть блокировка на смену.
// Блокировка стола исключает из выдачи всю его зону.
func (r *Repository) ListBlockedZoneIDs(ctx context.Context, tenantID uuid.UUID, date time.Time, turn domain.Turn) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("DISTINCT zone_id").
		From("bookings").
		Where(squirrel.Eq{
			"tenant_id":    tenantID,
			"booking_date": dateParam(date),
			"turn":         turn,
			"status":       domain.StatusBlocked,
		}).
		Where(squirrel.NotEq{"zone_id": nil}).
		OrderBy("zone_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockedZoneIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryIDs(ctx, executor, "ListBlockedZoneIDs", query, args)
}

func (r *Repository) queryIDs(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) ([]int64, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: %s - %w", ErrConflict, method, err)
		}
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, method, err)
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%w: %s - scan id: %v", ErrScanRow, method, err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		if isConflict(err) {
			return nil, fmt.Errorf("%w: %s - %w", ErrConflict, method, err)
		}
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, method, err)
	}

	return ids, nil
}

// Update перезаписывает изменяемые поля бронирования
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("booking_date", dateParam(booking.Date)).
		Set("turn", booking.Turn).
		Set("booking_time", booking.Time).
		Set("party_size", booking.PartySize).
		Set("zone_id", booking.ZoneID).
		Set("assigned_table_id", booking.AssignedTableID).
		Set("customer_name", booking.CustomerName).
		Set("customer_email", booking.CustomerEmail).
		Set("customer_phone", booking.CustomerPhone).
		Set("comments", booking.Comments).
		Set("status", booking.Status).
		Set("deposit_amount", booking.DepositAmount).
		Set("consumes_capacity", booking.ConsumesCapacity).
		Set("payment_id", booking.PaymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": booking.TenantID, "id": booking.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: Update - %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// UpdateStatus меняет только статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, tenantID uuid.UUID, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isConflict(err) {
			return fmt.Errorf("%w: UpdateStatus - %v", ErrConflict, err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// SetPaymentID сохраняет идентификатор платёжной сессии
func (r *Repository) SetPaymentID(ctx context.Context, tenantID uuid.UUID, id int64, paymentID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("payment_id", paymentID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetPaymentID - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetPaymentID - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SetPaymentID")
}

// Delete физически удаляет бронирование; назначенный стол освобождается сразу
func (r *Repository) Delete(ctx context.Context, tenantID uuid.UUID, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"tenant_id": tenantID, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "Delete")
}

func (r *Repository) selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("zones z ON z.id = b.zone_id AND z.tenant_id = b.tenant_id")
}

func checkAffected(result sql.Result, method string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, method, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// dateParam передаёт дату строкой, чтобы часовой пояс сессии не сдвигал DATE
func dateParam(t time.Time) string {
	return t.Format(domain.DateFormat)
}

func isConflict(err error) bool {
	return pgerrors.IsUniqueViolation(err) || pgerrors.IsSerializationFailure(err)
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking    domain.Booking
		zoneID     sql.NullInt64
		tableID    sql.NullInt64
		comments   sql.NullString
		paymentID  sql.NullString
		zoneNameES sql.NullString
		zoneNameEN sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.Token,
		&booking.TenantID,
		&booking.Date,
		&booking.Turn,
		&booking.Time,
		&booking.PartySize,
		&zoneID,
		&tableID,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&comments,
		&booking.Status,
		&booking.DepositAmount,
		&booking.ConsumesCapacity,
		&booking.IsManual,
		&paymentID,
		&zoneNameES,
		&zoneNameEN,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if zoneID.Valid {
		booking.ZoneID = &zoneID.Int64
	}
	if tableID.Valid {
		booking.AssignedTableID = &tableID.Int64
	}
	if comments.Valid {
		booking.Comments = &comments.String
	}
	if paymentID.Valid {
		booking.PaymentID = &paymentID.String
	}
	if zoneNameES.Valid {
		booking.ZoneNameES = &zoneNameES.String
	}
	if zoneNameEN.Valid {
		booking.ZoneNameEN = &zoneNameEN.String
	}
	booking.Date = domain.DateOnly(booking.Date)

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
