package staff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/petcare"
)

type fakeListAPI struct {
	appts      []petcare.Appointment
	stats      *petcare.DailyStats
	err        error
	lastParams petcare.ListAppointmentsParams
	listCalls  int
}

func (f *fakeListAPI) ListAppointments(_ context.Context, params petcare.ListAppointmentsParams) ([]petcare.Appointment, error) {
	f.listCalls++
	f.lastParams = params
	return f.appts, f.err
}

func (f *fakeListAPI) DailyStatsFor(_ context.Context, _ string) (*petcare.DailyStats, error) {
	return f.stats, f.err
}

func fixedClock() time.Time {
	return time.Date(2026, 8, 28, 11, 0, 0, 0, time.UTC)
}

func TestTodayUsesCurrentDate(t *testing.T) {
	api := &fakeListAPI{appts: sampleListing()}
	svc := NewService(api, nil).WithClock(fixedClock)

	got, err := svc.Today(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", api.lastParams.Date)
	assert.Len(t, got, 3)
}

func TestStatusFilterPushedToServer(t *testing.T) {
	api := &fakeListAPI{appts: sampleListing()}
	svc := NewService(api, nil).WithClock(fixedClock)

	_, err := svc.Today(context.Background(), Filter{Status: appointments.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", api.lastParams.Status)
}

func TestSearchFilterRunsLocally(t *testing.T) {
	api := &fakeListAPI{appts: sampleListing()}
	svc := NewService(api, nil).WithClock(fixedClock)

	got, err := svc.Today(context.Background(), Filter{Search: "whiskers"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "appt-2", got[0].ID)
	assert.Empty(t, api.lastParams.Status, "search never becomes a server param")
}

func TestEveryCallRefetches(t *testing.T) {
	api := &fakeListAPI{appts: sampleListing()}
	svc := NewService(api, nil).WithClock(fixedClock)

	for i := 0; i < 3; i++ {
		_, err := svc.Today(context.Background(), Filter{})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, api.listCalls)
}

func TestRangeParams(t *testing.T) {
	api := &fakeListAPI{}
	svc := NewService(api, nil)

	_, err := svc.Range(context.Background(), "2026-08-24", "2026-08-30", Filter{})
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", api.lastParams.StartDate)
	assert.Equal(t, "2026-08-30", api.lastParams.EndDate)
	assert.Empty(t, api.lastParams.Date)
}

func TestListErrorPropagates(t *testing.T) {
	api := &fakeListAPI{err: errors.New("upstream down")}
	svc := NewService(api, nil).WithClock(fixedClock)

	_, err := svc.Today(context.Background(), Filter{})
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	api := &fakeListAPI{stats: &petcare.DailyStats{TotalAppointments: 12, Completed: 7, Revenue: 84500}}
	svc := NewService(api, nil)

	stats, err := svc.Stats(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, 12, stats.TotalAppointments)
	assert.Equal(t, 84500, stats.Revenue)
}
