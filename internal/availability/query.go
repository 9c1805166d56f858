// Package availability wraps the slot-availability query shared by the
// booking wizard and the reschedule flow.
package availability

import (
	"context"
	"time"

	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// SlotAPI is the slice of the petcare client the query needs.
type SlotAPI interface {
	AvailableSlots(ctx context.Context, serviceID, date, staffID string) ([]petcare.TimeSlot, error)
}

// Query fetches candidate slots for a (service, date) pair. Results are
// never cached: the remote availability is the only source of truth, and a
// slot may vanish between the query and the booking call. Callers absorb
// that as an ordinary creation failure.
type Query struct {
	api    SlotAPI
	logger *logging.Logger
}

// NewQuery creates an availability query helper.
func NewQuery(api SlotAPI, logger *logging.Logger) *Query {
	if logger == nil {
		logger = logging.Default()
	}
	return &Query{api: api, logger: logger}
}

// SlotsFor returns the ordered candidate slots for serviceID on date
// (YYYY-MM-DD). staffID narrows the query to one staff member when set.
func (q *Query) SlotsFor(ctx context.Context, serviceID, date, staffID string) ([]petcare.TimeSlot, error) {
	slots, err := q.api.AvailableSlots(ctx, serviceID, date, staffID)
	if err != nil {
		return nil, err
	}
	q.logger.Debug("availability queried", "service_id", serviceID, "date", date, "slots", len(slots))
	return slots, nil
}

// Window enumerates days consecutive calendar dates starting at now, in the
// wire date format. This is the forward-looking window the wizard offers.
func Window(now time.Time, days int) []string {
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(petcare.DateFormat))
	}
	return dates
}
