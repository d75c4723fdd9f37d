package bookings

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-RestaurantBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
	failWith error
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		r.bookings[b.ID] = b
	}
	return r
}

func (r *fakeBookingRepo) GetByID(_ context.Context, tenantID uuid.UUID, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok || b.TenantID != tenantID {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeBookingRepo) GetByToken(_ context.Context, tenantID uuid.UUID, token uuid.UUID) (*domain.Booking, error) {
	for _, b := range r.bookings {
		if b.Token == token && b.TenantID == tenantID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) ListByDate(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.TenantID != filter.TenantID || !b.Date.Equal(filter.Date) {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *domain.Booking) error {
	if r.failWith != nil {
		return r.failWith
	}
	cp := *booking
	r.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ uuid.UUID, id int64, status domain.BookingStatus) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookingRepo) SetPaymentID(_ context.Context, _ uuid.UUID, id int64, paymentID string) error {
	r.bookings[id].PaymentID = &paymentID
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, _ uuid.UUID, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type fakeTables map[int64]*domain.Table

func (f fakeTables) GetTable(_ context.Context, _ uuid.UUID, id int64) (*domain.Table, error) {
	t, ok := f[id]
	if !ok {
		return nil, inventoryRepo.ErrTableNotFound
	}
	return t, nil
}

type fakePayments struct{ refunded []uuid.UUID }

func (p *fakePayments) Refund(_ context.Context, b *domain.Booking) error {
	p.refunded = append(p.refunded, b.Token)
	return nil
}

type recordingNotifier struct{ events []domain.BookingEvent }

func (n *recordingNotifier) Notify(event domain.BookingEvent) { n.events = append(n.events, event) }

var (
	testTenant = uuid.New()
	testDate   = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func booking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:               id,
		Token:            uuid.New(),
		TenantID:         testTenant,
		Date:             testDate,
		Turn:             domain.TurnDinner,
		Time:             types.MustTimeString("21:00"),
		PartySize:        4,
		ZoneID:           ptr.Ptr(int64(1)),
		CustomerName:     "Ana",
		CustomerEmail:    "ana@example.com",
		Status:           status,
		DepositAmount:    decimal.NewFromInt(20),
		ConsumesCapacity: true,
	}
}

func newTestService(repo *fakeBookingRepo) (*Service, *recordingNotifier, *fakePayments) {
	notifier := &recordingNotifier{}
	payments := &fakePayments{}
	tables := fakeTables{
		10: {ID: 10, ZoneID: 1, Number: "T10", MinPax: 2, MaxPax: 4},
		20: {ID: 20, ZoneID: 2, Number: "B20", MinPax: 1, MaxPax: 2},
	}
	return NewService(repo, tables, payments, notifier, nopLogger{}), notifier, payments
}

func TestService_ListByDate(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, domain.StatusConfirmed), booking(2, domain.StatusCancelled))
	svc, _, _ := newTestService(repo)

	resp, err := svc.ListByDate(context.Background(), &models.ListBookingsRequest{TenantID: testTenant, Date: testDate})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, "2024-06-01", resp.Bookings[0].Date)
	assert.Equal(t, "20.00", resp.Bookings[0].DepositAmount)

	_, err = svc.ListByDate(context.Background(), &models.ListBookingsRequest{TenantID: testTenant, Date: testDate, Status: ptr.Ptr("gone")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Update(t *testing.T) {
	t.Run("assign table and confirm", func(t *testing.T) {
		repo := newFakeBookingRepo(booking(1, domain.StatusPendingApproval))
		svc, notifier, _ := newTestService(repo)

		resp, err := svc.Update(context.Background(), testTenant, 1, &models.UpdateBookingRequest{
			AssignedTableID: ptr.Ptr(int64(10)),
			Status:          ptr.Ptr("confirmed"),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(10), *resp.AssignedTableID)
		assert.Equal(t, "confirmed", resp.Status)
		require.Len(t, notifier.events, 1)
		assert.Equal(t, domain.EventBookingStatusChanged, notifier.events[0].Type)
	})

	t.Run("invalid transition", func(t *testing.T) {
		repo := newFakeBookingRepo(booking(1, domain.StatusCompleted))
		svc, _, _ := newTestService(repo)

		_, err := svc.Update(context.Background(), testTenant, 1, &models.UpdateBookingRequest{Status: ptr.Ptr("confirmed")})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("table from another zone", func(t *testing.T) {
		repo := newFakeBookingRepo(booking(1, domain.StatusConfirmed))
		svc, _, _ := newTestService(repo)

		_, err := svc.Update(context.Background(), testTenant, 1, &models.UpdateBookingRequest{AssignedTableID: ptr.Ptr(int64(20))})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown table", func(t *testing.T) {
		repo := newFakeBookingRepo(booking(1, domain.StatusConfirmed))
		svc, _, _ := newTestService(repo)

		_, err := svc.Update(context.Background(), testTenant, 1, &models.UpdateBookingRequest{AssignedTableID: ptr.Ptr(int64(99))})
		assert.ErrorIs(t, err, ErrTableNotFound)
	})

	t.Run("storage conflict", func(t *testing.T) {
		repo := newFakeBookingRepo(booking(1, domain.StatusConfirmed))
		repo.failWith = errors.Join(bookingRepo.ErrConflict, errors.New("23505"))
		svc, _, _ := newTestService(repo)

		_, err := svc.Update(context.Background(), testTenant, 1, &models.UpdateBookingRequest{AssignedTableID: ptr.Ptr(int64(10))})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("waitlist deposit forced to zero", func(t *testing.T) {
		repo := newFakeBookingRepo(booking(1, domain.StatusWaitingList))
		svc, _, _ := newTestService(repo)

		resp, err := svc.Update(context.Background(), testTenant, 1, &models.UpdateBookingRequest{PartySize: ptr.Ptr(6)})
		require.NoError(t, err)
		assert.Equal(t, "0.00", resp.DepositAmount)
		assert.Equal(t, 6, resp.PartySize)
	})

	t.Run("not found", func(t *testing.T) {
		svc, _, _ := newTestService(newFakeBookingRepo())

		_, err := svc.Update(context.Background(), testTenant, 42, &models.UpdateBookingRequest{})
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_CheckInAndNoShow(t *testing.T) {
	paid := booking(1, domain.StatusConfirmed)
	paid.PaymentID = ptr.Ptr("pi_1")
	repo := newFakeBookingRepo(paid, booking(2, domain.StatusConfirmed), booking(3, domain.StatusPendingApproval))
	svc, _, payments := newTestService(repo)

	resp, err := svc.CheckIn(context.Background(), testTenant, 1)
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, []uuid.UUID{paid.Token}, payments.refunded)

	resp, err = svc.MarkNoShow(context.Background(), testTenant, 2)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Len(t, payments.refunded, 1)

	_, err = svc.CheckIn(context.Background(), testTenant, 3)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_PaymentLifecycle(t *testing.T) {
	pending := booking(1, domain.StatusPendingPayment)
	expiring := booking(2, domain.StatusPendingPayment)
	confirmed := booking(3, domain.StatusConfirmed)
	repo := newFakeBookingRepo(pending, expiring, confirmed)
	svc, _, _ := newTestService(repo)

	require.NoError(t, svc.ConfirmPayment(context.Background(), testTenant, pending.Token, "pi_9"))
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, "pi_9", *repo.bookings[1].PaymentID)

	require.NoError(t, svc.ConfirmPayment(context.Background(), testTenant, pending.Token, "pi_9"))

	expired, err := svc.ExpirePayment(context.Background(), testTenant, expiring.Token)
	require.NoError(t, err)
	assert.True(t, expired)
	assert.Equal(t, domain.StatusCancelled, repo.bookings[2].Status)

	expired, err = svc.ExpirePayment(context.Background(), testTenant, confirmed.Token)
	require.NoError(t, err)
	assert.False(t, expired)
	assert.Equal(t, domain.StatusConfirmed, repo.bookings[3].Status)

	assert.ErrorIs(t, svc.ConfirmPayment(context.Background(), testTenant, expiring.Token, ""), ErrInvalidTransition)
	assert.ErrorIs(t, svc.ConfirmPayment(context.Background(), testTenant, uuid.New(), ""), ErrBookingNotFound)
}

func TestService_Delete(t *testing.T) {
	repo := newFakeBookingRepo(booking(1, domain.StatusConfirmed))
	svc, notifier, _ := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), testTenant, 1))
	assert.Empty(t, repo.bookings)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventBookingDeleted, notifier.events[0].Type)

	assert.ErrorIs(t, svc.Delete(context.Background(), testTenant, 1), ErrBookingNotFound)
}
