package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	booking   *domain.Booking
	updateErr error
	updates   []domain.BookingStatus
}

func (r *fakeRepo) GetByToken(_ context.Context, _ uuid.UUID, token uuid.UUID) (*domain.Booking, error) {
	if r.booking == nil || r.booking.Token != token {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *r.booking
	return &copied, nil
}

func (r *fakeRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _ int64, status domain.BookingStatus) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updates = append(r.updates, status)
	r.booking.Status = status
	return nil
}

type fakeSettings struct{ settings domain.Settings }

func (f fakeSettings) Get(context.Context, uuid.UUID) (domain.Settings, error) {
	return f.settings, nil
}

type recordingNotifier struct{ events []domain.BookingEvent }

func (n *recordingNotifier) Notify(event domain.BookingEvent) { n.events = append(n.events, event) }

var (
	tenant = uuid.New()
	june1  = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func dinnerBooking(status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:               7,
		Token:            uuid.New(),
		TenantID:         tenant,
		Date:             june1,
		Turn:             domain.TurnDinner,
		Time:             types.MustTimeString("21:00"),
		PartySize:        4,
		Status:           status,
		ConsumesCapacity: true,
	}
}

func newUseCase(repo *fakeRepo, notifier Notifier, loc *time.Location, now time.Time) *UseCase {
	return NewUseCase(repo, fakeSettings{domain.DefaultSettings()}, notifier, loc, nopLogger{}).
		WithTimeProvider(fixedTime{now: now})
}

func TestCancelBooking_Success(t *testing.T) {
	repo := &fakeRepo{booking: dinnerBooking(domain.StatusConfirmed)}
	notifier := &recordingNotifier{}
	// ровно 1440 минут до визита
	uc := newUseCase(repo, notifier, time.UTC, time.Date(2024, 5, 31, 21, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
	require.NoError(t, err)

	assert.Equal(t, "cancelled", resp.Status)
	assert.False(t, resp.AlreadyCancelled)
	assert.Equal(t, []domain.BookingStatus{domain.StatusCancelled}, repo.updates)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventBookingStatusChanged, notifier.events[0].Type)
	assert.Equal(t, domain.StatusCancelled, notifier.events[0].Booking.Status)
}

func TestCancelBooking_LateCancellation(t *testing.T) {
	repo := &fakeRepo{booking: dinnerBooking(domain.StatusConfirmed)}
	notifier := &recordingNotifier{}
	uc := newUseCase(repo, notifier, time.UTC, time.Date(2024, 5, 31, 21, 1, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
	assert.ErrorIs(t, err, ErrLateCancellation)
	assert.Empty(t, repo.updates)
	assert.Empty(t, notifier.events)
	assert.Equal(t, domain.StatusConfirmed, repo.booking.Status)
}

func TestCancelBooking_UsesRestaurantTimezone(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)
	// 21:00 по Мадриду это 19:00 UTC, до визита 23.5 часа
	now := time.Date(2024, 5, 31, 19, 30, 0, 0, time.UTC)

	repo := &fakeRepo{booking: dinnerBooking(domain.StatusConfirmed)}
	_, err := newUseCase(repo, nil, madrid, now).
		Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
	assert.ErrorIs(t, err, ErrLateCancellation)

	repo = &fakeRepo{booking: dinnerBooking(domain.StatusConfirmed)}
	_, err = newUseCase(repo, nil, time.UTC, now).
		Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
	assert.NoError(t, err)
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	repo := &fakeRepo{booking: dinnerBooking(domain.StatusCancelled)}
	notifier := &recordingNotifier{}
	// даже в последний момент повторная отмена успешна
	uc := newUseCase(repo, notifier, time.UTC, time.Date(2024, 6, 1, 20, 59, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyCancelled)
	assert.Empty(t, repo.updates)
	assert.Empty(t, notifier.events)
}

func TestCancelBooking_Rejections(t *testing.T) {
	early := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("unknown token", func(t *testing.T) {
		repo := &fakeRepo{booking: dinnerBooking(domain.StatusConfirmed)}
		_, err := newUseCase(repo, nil, time.UTC, early).
			Execute(context.Background(), &Request{TenantID: tenant, Token: uuid.New()})
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.Empty(t, repo.updates)
	})

	t.Run("missing token", func(t *testing.T) {
		repo := &fakeRepo{}
		_, err := newUseCase(repo, nil, time.UTC, early).
			Execute(context.Background(), &Request{TenantID: tenant})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusBlocked} {
		t.Run(string(status), func(t *testing.T) {
			repo := &fakeRepo{booking: dinnerBooking(status)}
			_, err := newUseCase(repo, nil, time.UTC, early).
				Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.Empty(t, repo.updates)
		})
	}

	t.Run("storage failure", func(t *testing.T) {
		repo := &fakeRepo{booking: dinnerBooking(domain.StatusPendingPayment), updateErr: errors.New("connection reset")}
		_, err := newUseCase(repo, nil, time.UTC, early).
			Execute(context.Background(), &Request{TenantID: tenant, Token: repo.booking.Token})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
