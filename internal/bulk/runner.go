// Package bulk runs one transition across many appointments sequentially,
// continuing past per-item failures and reporting how many succeeded.
package bulk

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/observability/metrics"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

var bulkTracer = otel.Tracer("frontdesk.internal.bulk")

// Applier performs one transition on one appointment. Satisfied by
// *appointments.Transitioner.
type Applier interface {
	ApplyByID(ctx context.Context, appointmentID string, action appointments.Action, params appointments.TransitionParams) (*petcare.Appointment, error)
}

// Confirmer answers the operator confirmation prompt. Returning false
// aborts the run before any appointment is touched.
type Confirmer func(prompt string) bool

// Refresher reloads whatever view initiated the run. It is called exactly
// once after the run completes, regardless of how many items failed.
type Refresher func(ctx context.Context) error

// Failure records one appointment the run could not transition.
type Failure struct {
	AppointmentID string `json:"appointment_id"`
	Message       string `json:"message"`
}

// Summary is the outcome of a bulk run.
type Summary struct {
	Action    appointments.Action `json:"action"`
	Attempted int                 `json:"attempted"`
	Succeeded int                 `json:"succeeded"`
	Failures  []Failure           `json:"failures,omitempty"`
	Confirmed bool                `json:"confirmed"`
}

// String renders the operator-facing result line.
func (s Summary) String() string {
	if !s.Confirmed {
		return "cancelled"
	}
	return fmt.Sprintf("%d of %d succeeded", s.Succeeded, s.Attempted)
}

// Runner executes bulk transitions. Items are processed strictly in order,
// one request at a time; a failure is recorded and the run moves on.
type Runner struct {
	applier Applier
	confirm Confirmer
	refresh Refresher
	logger  *logging.Logger
	metrics *metrics.TransitionMetrics
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// WithMetrics records per-item outcomes.
func WithMetrics(m *metrics.TransitionMetrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// WithRefresher sets the view reload hook.
func WithRefresher(refresh Refresher) Option {
	return func(r *Runner) { r.refresh = refresh }
}

// NewRunner creates a bulk runner. confirm may be nil, in which case runs
// proceed without prompting.
func NewRunner(applier Applier, confirm Confirmer, opts ...Option) *Runner {
	if applier == nil {
		panic("bulk: applier required")
	}
	r := &Runner{
		applier: applier,
		confirm: confirm,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Prompt builds the confirmation question for a run, e.g.
// "Check in 3 appointment(s)?".
func Prompt(action appointments.Action, count int) string {
	verb := strings.ReplaceAll(string(action), "_", " ")
	if len(verb) > 0 {
		verb = strings.ToUpper(verb[:1]) + verb[1:]
	}
	return fmt.Sprintf("%s %d appointment(s)?", verb, count)
}

// Run applies action to every id in order. The operator is asked once, up
// front, for the whole batch; declining returns a zero summary with no
// network calls. Each item is attempted exactly once and failures do not
// stop the run. The refresh hook fires exactly once after the last item.
func (r *Runner) Run(ctx context.Context, ids []string, action appointments.Action, params appointments.TransitionParams) (Summary, error) {
	summary := Summary{Action: action, Attempted: len(ids)}
	if len(ids) == 0 {
		summary.Confirmed = true
		return summary, nil
	}

	if r.confirm != nil && !r.confirm(Prompt(action, len(ids))) {
		r.logger.Info("bulk run declined", "action", action, "count", len(ids))
		return summary, nil
	}
	summary.Confirmed = true

	ctx, span := bulkTracer.Start(ctx, "bulk.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.action", string(action)),
		attribute.Int("frontdesk.count", len(ids)),
	)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			summary.Failures = append(summary.Failures, Failure{AppointmentID: id, Message: err.Error()})
			r.metrics.ObserveBulkItem(string(action), "error")
			continue
		}
		if _, err := r.applier.ApplyByID(ctx, id, action, params); err != nil {
			summary.Failures = append(summary.Failures, Failure{AppointmentID: id, Message: err.Error()})
			r.metrics.ObserveBulkItem(string(action), "error")
			r.logger.Warn("bulk item failed", "appointment_id", id, "action", action, "error", err)
			continue
		}
		summary.Succeeded++
		r.metrics.ObserveBulkItem(string(action), "success")
	}

	if r.refresh != nil {
		if err := r.refresh(ctx); err != nil {
			r.logger.Warn("bulk refresh failed", "action", action, "error", err)
		}
	}

	r.logger.Info("bulk run finished",
		"action", action,
		"attempted", summary.Attempted,
		"succeeded", summary.Succeeded,
	)
	return summary, nil
}
