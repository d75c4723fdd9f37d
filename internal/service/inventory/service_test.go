package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RestaurantBooking/internal/domain"
	inventoryRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/inventory"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	zones  map[int64]*domain.Zone
	tables map[int64]*domain.Table
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{zones: map[int64]*domain.Zone{}, tables: map[int64]*domain.Table{}}
}

func (r *fakeRepo) ListZones(context.Context, uuid.UUID) ([]*domain.Zone, error) {
	var out []*domain.Zone
	for _, z := range r.zones {
		out = append(out, z)
	}
	return out, nil
}

func (r *fakeRepo) GetZone(_ context.Context, _ uuid.UUID, id int64) (*domain.Zone, error) {
	z, ok := r.zones[id]
	if !ok {
		return nil, inventoryRepo.ErrZoneNotFound
	}
	return z, nil
}

func (r *fakeRepo) CreateZone(_ context.Context, zone *domain.Zone) (*domain.Zone, error) {
	r.nextID++
	zone.ID = r.nextID
	r.zones[zone.ID] = zone
	return zone, nil
}

func (r *fakeRepo) DeleteZone(_ context.Context, _ uuid.UUID, id int64) error {
	if _, ok := r.zones[id]; !ok {
		return inventoryRepo.ErrZoneNotFound
	}
	delete(r.zones, id)
	for tid, t := range r.tables {
		if t.ZoneID == id {
			delete(r.tables, tid)
		}
	}
	return nil
}

func (r *fakeRepo) ListTables(_ context.Context, _ uuid.UUID, zoneID *int64) ([]*domain.Table, error) {
	var out []*domain.Table
	for _, t := range r.tables {
		if zoneID == nil || t.ZoneID == *zoneID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListSuitableTables(ctx context.Context, tenantID uuid.UUID, zoneID *int64, partySize int) ([]*domain.Table, error) {
	all, _ := r.ListTables(ctx, tenantID, zoneID)
	var out []*domain.Table
	for _, t := range all {
		if t.Suits(partySize) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateTable(_ context.Context, table *domain.Table) (*domain.Table, error) {
	r.nextID++
	table.ID = r.nextID
	r.tables[table.ID] = table
	return table, nil
}

func (r *fakeRepo) DeleteTable(_ context.Context, _ uuid.UUID, id int64) error {
	if _, ok := r.tables[id]; !ok {
		return inventoryRepo.ErrTableNotFound
	}
	delete(r.tables, id)
	return nil
}

func TestService_ZoneLifecycle(t *testing.T) {
	tenant := uuid.New()
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	_, err := svc.CreateZone(context.Background(), &domain.Zone{TenantID: tenant})
	assert.ErrorIs(t, err, ErrInvalidInput)

	zone, err := svc.CreateZone(context.Background(), &domain.Zone{TenantID: tenant, NameES: " Terraza "})
	require.NoError(t, err)
	assert.Equal(t, "Terraza", zone.Name)
	assert.Equal(t, "Terraza", zone.NameEN)

	_, err = svc.CreateTable(context.Background(), &domain.Table{TenantID: tenant, ZoneID: zone.ID, Number: "T1", MinPax: 2, MaxPax: 4})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteZone(context.Background(), tenant, zone.ID))
	assert.Empty(t, repo.tables)
	assert.ErrorIs(t, svc.DeleteZone(context.Background(), tenant, zone.ID), ErrZoneNotFound)
}

func TestService_CreateTable_Validation(t *testing.T) {
	tenant := uuid.New()
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	zone, err := svc.CreateZone(context.Background(), &domain.Zone{TenantID: tenant, Name: "Bar"})
	require.NoError(t, err)

	cases := []struct {
		name  string
		table domain.Table
		want  error
	}{
		{"missing number", domain.Table{ZoneID: zone.ID, MinPax: 1, MaxPax: 2}, ErrInvalidInput},
		{"inverted range", domain.Table{ZoneID: zone.ID, Number: "B1", MinPax: 4, MaxPax: 2}, ErrInvalidInput},
		{"zero min", domain.Table{ZoneID: zone.ID, Number: "B1", MinPax: 0, MaxPax: 2}, ErrInvalidInput},
		{"unknown zone", domain.Table{ZoneID: 999, Number: "B1", MinPax: 1, MaxPax: 2}, ErrZoneNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			table := tc.table
			table.TenantID = tenant
			_, err := svc.CreateTable(context.Background(), &table)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestService_ListSuitableTables(t *testing.T) {
	tenant := uuid.New()
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	zone, err := svc.CreateZone(context.Background(), &domain.Zone{TenantID: tenant, Name: "Sala"})
	require.NoError(t, err)
	for _, rng := range [][2]int{{1, 2}, {2, 4}, {4, 8}} {
		_, err := svc.CreateTable(context.Background(), &domain.Table{TenantID: tenant, ZoneID: zone.ID, Number: "S", MinPax: rng[0], MaxPax: rng[1]})
		require.NoError(t, err)
	}

	tables, err := svc.ListSuitableTables(context.Background(), tenant, &zone.ID, 4)
	require.NoError(t, err)
	assert.Len(t, tables, 2)

	_, err = svc.ListSuitableTables(context.Background(), tenant, nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
