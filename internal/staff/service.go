package staff

import (
	"context"
	"time"

	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// API is the slice of the petcare client the dashboard listing needs.
type API interface {
	ListAppointments(ctx context.Context, params petcare.ListAppointmentsParams) ([]petcare.Appointment, error)
	DailyStatsFor(ctx context.Context, date string) (*petcare.DailyStats, error)
}

// Service assembles the dashboard's read views. Every call re-fetches from
// the remote API and the result replaces whatever the view held before;
// nothing is merged into stale local state.
type Service struct {
	api    API
	logger *logging.Logger
	clock  func() time.Time
}

// NewService creates the dashboard read service.
func NewService(api API, logger *logging.Logger) *Service {
	if api == nil {
		panic("staff: api required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{api: api, logger: logger, clock: time.Now}
}

// WithClock overrides the wall clock (tests).
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

// Today lists today's appointments with the filter applied. The status
// filter is pushed to the server; the free-text search runs locally.
func (s *Service) Today(ctx context.Context, filter Filter) ([]petcare.Appointment, error) {
	return s.For(ctx, s.clock().Format(petcare.DateFormat), filter)
}

// For lists one calendar date's appointments with the filter applied.
func (s *Service) For(ctx context.Context, date string, filter Filter) ([]petcare.Appointment, error) {
	params := petcare.ListAppointmentsParams{Date: date}
	if filter.Status != "" {
		params.Status = string(filter.Status)
	}
	appts, err := s.api.ListAppointments(ctx, params)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("appointments listed", "date", date, "count", len(appts))
	return filter.Apply(appts), nil
}

// Range lists a date span (inclusive) with the filter applied.
func (s *Service) Range(ctx context.Context, startDate, endDate string, filter Filter) ([]petcare.Appointment, error) {
	params := petcare.ListAppointmentsParams{StartDate: startDate, EndDate: endDate}
	if filter.Status != "" {
		params.Status = string(filter.Status)
	}
	appts, err := s.api.ListAppointments(ctx, params)
	if err != nil {
		return nil, err
	}
	return filter.Apply(appts), nil
}

// Stats fetches the daily summary card values for one date.
func (s *Service) Stats(ctx context.Context, date string) (*petcare.DailyStats, error) {
	return s.api.DailyStatsFor(ctx, date)
}
