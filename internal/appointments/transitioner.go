package appointments

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightpaws/frontdesk/internal/observability/metrics"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

var transitionTracer = otel.Tracer("frontdesk.internal.appointments")

var (
	// ErrInFlight means a request for this appointment is already
	// outstanding; the caller should treat the invocation as a no-op.
	ErrInFlight = errors.New("appointments: action already in flight")
	// ErrSlotRequired means a reschedule was attempted without a freshly
	// queried slot.
	ErrSlotRequired = errors.New("appointments: reschedule requires a slot")
)

// IllegalTransitionError reports an action invoked from a status the
// transition table does not permit.
type IllegalTransitionError struct {
	Action Action
	Status Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("appointments: %s not allowed from %s", e.Action, e.Status)
}

// API is the slice of the petcare client the transitioner depends on.
type API interface {
	GetAppointment(ctx context.Context, appointmentID string) (*petcare.Appointment, error)
	CheckIn(ctx context.Context, appointmentID string) (*petcare.Appointment, error)
	Start(ctx context.Context, appointmentID string) (*petcare.Appointment, error)
	Complete(ctx context.Context, appointmentID, notes string) (*petcare.Appointment, error)
	Cancel(ctx context.Context, appointmentID, reason string) (*petcare.Appointment, error)
	MarkNoShow(ctx context.Context, appointmentID string) (*petcare.Appointment, error)
	Reschedule(ctx context.Context, appointmentID string, req petcare.RescheduleRequest) (*petcare.Appointment, error)
}

// TransitionParams carries the action-specific inputs.
type TransitionParams struct {
	Notes  string            // complete
	Reason string            // cancel
	Slot   *petcare.TimeSlot // reschedule: must come from a fresh availability query
}

// Transitioner applies status transitions the same way for every surface:
// dispatch the mutating call, re-fetch the authoritative record, and always
// release the in-flight mark, success or failure.
type Transitioner struct {
	api     API
	guard   *InflightGuard
	logger  *logging.Logger
	metrics *metrics.TransitionMetrics
}

// NewTransitioner creates the shared transition helper.
func NewTransitioner(api API, logger *logging.Logger, m *metrics.TransitionMetrics) *Transitioner {
	if api == nil {
		panic("appointments: api required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Transitioner{
		api:     api,
		guard:   NewInflightGuard(),
		logger:  logger,
		metrics: m,
	}
}

// Apply performs action on an appointment whose current record is known,
// refusing actions the transition table forbids for its status.
func (t *Transitioner) Apply(ctx context.Context, appt *petcare.Appointment, action Action, params TransitionParams) (*petcare.Appointment, error) {
	status := ParseStatus(appt.Status)
	if !Can(action, status) {
		return nil, &IllegalTransitionError{Action: action, Status: status}
	}
	return t.ApplyByID(ctx, appt.ID, action, params)
}

// ApplyByID performs action on an appointment identified only by id. The
// server remains the authority on whether the transition is legal; this
// path is used by the bulk runner, which holds ids, not records.
func (t *Transitioner) ApplyByID(ctx context.Context, appointmentID string, action Action, params TransitionParams) (*petcare.Appointment, error) {
	if action == ActionReschedule && params.Slot == nil {
		return nil, ErrSlotRequired
	}
	if !t.guard.TryAcquire(appointmentID, action) {
		return nil, ErrInFlight
	}
	defer t.guard.Release(appointmentID)

	ctx, span := transitionTracer.Start(ctx, "appointments.transition")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.appointment_id", appointmentID),
		attribute.String("frontdesk.action", string(action)),
	)

	_, err := t.dispatch(ctx, appointmentID, action, params)
	if err != nil {
		span.RecordError(err)
		t.metrics.ObserveTransition(string(action), "error")
		t.logger.Warn("transition failed",
			"appointment_id", appointmentID,
			"action", action,
			"error", err,
		)
		return nil, err
	}

	// Replace, never merge: the re-fetched record is the only state the
	// views are allowed to display after a mutation.
	refreshed, err := t.api.GetAppointment(ctx, appointmentID)
	if err != nil {
		span.RecordError(err)
		t.metrics.ObserveTransition(string(action), "refetch_error")
		return nil, fmt.Errorf("appointments: reload after %s: %w", action, err)
	}

	t.metrics.ObserveTransition(string(action), "success")
	t.logger.Info("transition applied",
		"appointment_id", appointmentID,
		"action", action,
		"status", refreshed.Status,
	)
	return refreshed, nil
}

func (t *Transitioner) dispatch(ctx context.Context, id string, action Action, params TransitionParams) (*petcare.Appointment, error) {
	switch action {
	case ActionCheckIn:
		return t.api.CheckIn(ctx, id)
	case ActionStart:
		return t.api.Start(ctx, id)
	case ActionComplete:
		return t.api.Complete(ctx, id, params.Notes)
	case ActionCancel:
		return t.api.Cancel(ctx, id, params.Reason)
	case ActionNoShow:
		return t.api.MarkNoShow(ctx, id)
	case ActionReschedule:
		return t.api.Reschedule(ctx, id, petcare.RescheduleRequest{
			ScheduledStart: params.Slot.StartTime,
			ScheduledEnd:   params.Slot.EndTime,
		})
	default:
		return nil, fmt.Errorf("appointments: unknown action %q", action)
	}
}
