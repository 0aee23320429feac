package holiday_test

import (
	"context"
	"testing"
	"time"

	"github.com/sohada-a2it/A2itHRMServer/internal/calendar"
	"github.com/sohada-a2it/A2itHRMServer/internal/holiday"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeHolidayRepository struct {
	rows map[string]*holiday.Holiday
}

func newFakeHolidayRepository() *fakeHolidayRepository {
	return &fakeHolidayRepository{rows: make(map[string]*holiday.Holiday)}
}

func (f *fakeHolidayRepository) Create(_ context.Context, h *holiday.Holiday) error {
	cp := *h
	f.rows[h.ID.String()] = &cp
	return nil
}

func (f *fakeHolidayRepository) FindAll(_ context.Context) ([]holiday.Holiday, error) {
	out := make([]holiday.Holiday, 0, len(f.rows))
	for _, h := range f.rows {
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeHolidayRepository) FindByID(_ context.Context, id string) (*holiday.Holiday, error) {
	h, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHolidayRepository) FindActiveInRange(_ context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	var out []holiday.Holiday
	for _, h := range f.rows {
		if !h.IsActive {
			continue
		}
		if h.Date.Before(from) || h.Date.After(to) {
			continue
		}
		out = append(out, *h)
	}
	return out, nil
}

func (f *fakeHolidayRepository) Update(_ context.Context, h *holiday.Holiday) error {
	cp := *h
	f.rows[h.ID.String()] = &cp
	return nil
}

func (f *fakeHolidayRepository) Delete(_ context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func TestHolidayService_Create(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHolidayRepository()
	svc := holiday.NewService(repo)

	t.Run("creates an active holiday by default", func(t *testing.T) {
		resp, err := svc.Create(ctx, uuid.NewString(), holiday.CreateHolidayRequest{
			Name: "Victory Day",
			Date: "2024-12-16",
			Type: holiday.TypeGovt,
		})
		require.NoError(t, err)
		assert.Equal(t, "2024-12-16", resp.Date)
		assert.True(t, resp.IsActive)
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, uuid.NewString(), holiday.CreateHolidayRequest{
			Name: "Bad Date",
			Date: "16/12/2024",
			Type: holiday.TypeGovt,
		})
		assert.Error(t, err)
	})
}

func TestHolidayService_ActiveInRange(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHolidayRepository()
	svc := holiday.NewService(repo)

	mustCreate := func(name, date, kind string, active bool) {
		_, err := svc.Create(ctx, uuid.NewString(), holiday.CreateHolidayRequest{
			Name: name, Date: date, Type: kind, IsActive: &active,
		})
		require.NoError(t, err)
	}

	mustCreate("May Day", "2024-05-01", holiday.TypeGovt, true)
	mustCreate("Founders Day", "2024-05-08", holiday.TypeOther, true)
	mustCreate("Disabled Day", "2024-05-09", holiday.TypeGovt, false)
	mustCreate("Out Of Range", "2024-06-01", holiday.TypeGovt, true)

	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)

	out, err := svc.ActiveInRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, out, 2)

	kinds := make(map[string]calendar.HolidayKind)
	for _, h := range out {
		kinds[h.Date.Format("2006-01-02")] = h.Kind
		assert.True(t, h.Active)
	}
	assert.Equal(t, calendar.HolidayGovt, kinds["2024-05-01"])
	assert.Equal(t, calendar.HolidayOther, kinds["2024-05-08"])
}

func TestHolidayService_Update(t *testing.T) {
	ctx := context.Background()
	repo := newFakeHolidayRepository()
	svc := holiday.NewService(repo)

	created, err := svc.Create(ctx, uuid.NewString(), holiday.CreateHolidayRequest{
		Name: "Eid Holiday",
		Date: "2024-04-10",
		Type: holiday.TypeGovt,
	})
	require.NoError(t, err)

	inactive := false
	resp, err := svc.Update(ctx, created.ID, holiday.UpdateHolidayRequest{
		Name:     "Eid Holiday (moved)",
		Date:     "2024-04-11",
		Type:     holiday.TypeGovt,
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-04-11", resp.Date)
	assert.False(t, resp.IsActive)

	_, err = svc.Update(ctx, uuid.NewString(), holiday.UpdateHolidayRequest{
		Name: "Ghost", Date: "2024-04-12", Type: holiday.TypeGovt,
	})
	assert.Error(t, err)
}
