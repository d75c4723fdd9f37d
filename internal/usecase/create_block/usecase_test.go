package create_block

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/booking"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookings struct {
	created   []*domain.Booking
	createErr error
}

func (r *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	b.ID = int64(len(r.created) + 1)
	b.Token = uuid.New()
	r.created = append(r.created, b)
	return b, nil
}

type fakeInventory struct{}

func (fakeInventory) GetZone(_ context.Context, _ uuid.UUID, id int64) (*domain.Zone, error) {
	if id != 1 && id != 2 {
		return nil, inventoryRepo.ErrZoneNotFound
	}
	return &domain.Zone{ID: id}, nil
}

func (fakeInventory) GetTable(_ context.Context, _ uuid.UUID, id int64) (*domain.Table, error) {
	switch id {
	case 11:
		return &domain.Table{ID: 11, ZoneID: 1, Number: "T1", MinPax: 2, MaxPax: 6}, nil
	case 21:
		return &domain.Table{ID: 21, ZoneID: 2, Number: "B1", MinPax: 1, MaxPax: 2}, nil
	}
	return nil, inventoryRepo.ErrTableNotFound
}

type recordingNotifier struct{ events []domain.BookingEvent }

func (n *recordingNotifier) Notify(event domain.BookingEvent) { n.events = append(n.events, event) }

var (
	tenant = uuid.New()
	june1  = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
)

func TestCreateBlock_ZoneLevel(t *testing.T) {
	repo := &fakeBookings{}
	notifier := &recordingNotifier{}
	uc := NewUseCase(repo, fakeInventory{}, notifier, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 1, Reason: " Evento privado ",
	})
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	b := repo.created[0]
	assert.Equal(t, domain.StatusBlocked, b.Status)
	assert.True(t, b.IsZoneBlock())
	assert.Equal(t, "BLOQUEO: Evento privado", b.CustomerName)
	assert.Equal(t, domain.BlockZonePartySize, b.PartySize)
	assert.Equal(t, "bloqueo@admin.local", b.CustomerEmail)
	assert.Equal(t, "000000000", b.CustomerPhone)
	assert.Equal(t, "13:00", b.Time.String())
	assert.True(t, b.DepositAmount.IsZero())
	assert.True(t, b.IsManual)

	assert.Equal(t, int64(1), resp.ZoneID)
	assert.Nil(t, resp.AssignedTableID)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.EventBlockCreated, notifier.events[0].Type)
}

func TestCreateBlock_TableLevel(t *testing.T) {
	repo := &fakeBookings{}
	uc := NewUseCase(repo, fakeInventory{}, nil, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: tenant, Date: june1, Turn: "dinner", ZoneID: 1, TableID: ptr.Ptr(int64(11)), Reason: "Rota",
	})
	require.NoError(t, err)

	b := repo.created[0]
	assert.Equal(t, "BLOQUEO MESA T1: Rota", b.CustomerName)
	assert.Equal(t, 6, b.PartySize)
	assert.Equal(t, "20:00", b.Time.String())
	assert.False(t, b.IsZoneBlock())
	assert.True(t, b.OccupiesTable())
	assert.Equal(t, int64(11), *resp.AssignedTableID)
}

func TestCreateBlock_Rejections(t *testing.T) {
	cases := []struct {
		name    string
		req     Request
		repoErr error
		want    error
	}{
		{"missing reason", Request{TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 1, Reason: "  "}, nil, ErrInvalidInput},
		{"bad turn", Request{TenantID: tenant, Date: june1, Turn: "brunch", ZoneID: 1, Reason: "x"}, nil, ErrInvalidInput},
		{"no zone", Request{TenantID: tenant, Date: june1, Turn: "lunch", Reason: "x"}, nil, ErrInvalidInput},
		{"zero table", Request{TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 1, TableID: ptr.Ptr(int64(0)), Reason: "x"}, nil, ErrInvalidInput},
		{"unknown zone", Request{TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 9, Reason: "x"}, nil, ErrZoneNotFound},
		{"unknown table", Request{TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 1, TableID: ptr.Ptr(int64(99)), Reason: "x"}, nil, ErrTableNotFound},
		{"table in other zone", Request{TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 1, TableID: ptr.Ptr(int64(21)), Reason: "x"}, nil, ErrInvalidInput},
		{"table taken", Request{TenantID: tenant, Date: june1, Turn: "lunch", ZoneID: 1, TableID: ptr.Ptr(int64(11)), Reason: "x"},
			fmt.Errorf("%w: Create - duplicate", bookingRepo.ErrConflict), ErrConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeBookings{createErr: tc.repoErr}
			uc := NewUseCase(repo, fakeInventory{}, nil, nopLogger{})

			_, err := uc.Execute(context.Background(), &tc.req)
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, repo.created)
		})
	}
}
