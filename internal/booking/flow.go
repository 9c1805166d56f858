// Package booking drives the public four-stage booking wizard: pick a
// service, pick a date and slot, enter contact and pet details, confirm.
// The flow holds the accumulated selection and performs the ordered
// owner -> pets -> appointment creation sequence on submission.
package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/brightpaws/frontdesk/internal/availability"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

var flowTracer = otel.Tracer("frontdesk.internal.booking")

// Step is a wizard stage. Stages are strictly ordered; backward navigation
// exists only from datetime and details, and nothing leads back out of
// confirmation except starting over.
type Step string

const (
	StepService      Step = "service"
	StepDateTime     Step = "datetime"
	StepDetails      Step = "details"
	StepConfirmation Step = "confirmation"
)

var (
	// ErrWrongStep means the call is not valid for the wizard's current stage.
	ErrWrongStep = errors.New("booking: not valid for current step")
	// ErrUnknownService means the selected id is not in the fetched catalog.
	ErrUnknownService = errors.New("booking: unknown service")
	// ErrDateOutOfWindow means the date is outside the offered window.
	ErrDateOutOfWindow = errors.New("booking: date outside booking window")
	// ErrNoDateSelected means a slot was chosen before a date.
	ErrNoDateSelected = errors.New("booking: no date selected")
	// ErrNoPets means the details stage was submitted without any pet.
	ErrNoPets = errors.New("booking: at least one pet is required")
	// ErrSubmitInFlight means a submission for this flow is already running.
	ErrSubmitInFlight = errors.New("booking: submission already in flight")
)

// API is the slice of the petcare client the wizard depends on.
type API interface {
	ListServices(ctx context.Context) ([]petcare.Service, error)
	SearchOwners(ctx context.Context, email string, limit int) ([]petcare.Owner, error)
	CreateOwner(ctx context.Context, input petcare.OwnerInput) (*petcare.Owner, error)
	CreatePet(ctx context.Context, ownerID string, input petcare.PetInput) (*petcare.Pet, error)
	CreateAppointment(ctx context.Context, req petcare.AppointmentRequest) (*petcare.Appointment, error)
}

// Confirmation is the read-only summary shown after a successful booking.
type Confirmation struct {
	Appointment *petcare.Appointment `json:"appointment"`
	Service     petcare.Service      `json:"service"`
	Date        string               `json:"date"`
	Slot        petcare.TimeSlot     `json:"slot"`
	Owner       OwnerForm            `json:"owner"`
	Pets        []PetForm            `json:"pets"`
}

// Flow is one customer's pass through the wizard. Safe for concurrent use;
// a flow serves exactly one booking and is reset by StartOver.
type Flow struct {
	mu sync.Mutex

	api        API
	slots      *availability.Query
	logger     *logging.Logger
	clock      func() time.Time
	windowDays int

	step         Step
	services     []petcare.Service
	service      *petcare.Service
	date         string
	slot         *petcare.TimeSlot
	confirmation *Confirmation
	submitting   bool
}

// FlowOption configures a Flow.
type FlowOption func(*Flow)

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) FlowOption {
	return func(f *Flow) { f.logger = logger }
}

// WithClock overrides the wall clock (tests).
func WithClock(clock func() time.Time) FlowOption {
	return func(f *Flow) { f.clock = clock }
}

// WithWindowDays overrides the 14-day booking window.
func WithWindowDays(days int) FlowOption {
	return func(f *Flow) { f.windowDays = days }
}

// NewFlow creates a wizard at the service stage.
func NewFlow(api API, slots *availability.Query, opts ...FlowOption) *Flow {
	if api == nil {
		panic("booking: api required")
	}
	f := &Flow{
		api:        api,
		slots:      slots,
		logger:     logging.Default(),
		clock:      time.Now,
		windowDays: 14,
		step:       StepService,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Step returns the current wizard stage.
func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Services lists the bookable catalog, fetched once per pass through the
// service stage.
func (f *Flow) Services(ctx context.Context) ([]petcare.Service, error) {
	f.mu.Lock()
	if f.services != nil {
		defer f.mu.Unlock()
		return f.services, nil
	}
	f.mu.Unlock()

	services, err := f.api.ListServices(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.services = services
	return services, nil
}

// SelectService fixes the service for the rest of the flow and advances to
// the datetime stage. Any date or slot picked for a previous service is
// discarded: slots are only valid for the service they were queried for.
func (f *Flow) SelectService(serviceID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepService {
		return fmt.Errorf("%w: select service during %s", ErrWrongStep, f.step)
	}
	for i := range f.services {
		if f.services[i].ID == serviceID {
			f.service = &f.services[i]
			f.date = ""
			f.slot = nil
			f.step = StepDateTime
			f.logger.Info("service selected", "service_id", serviceID, "name", f.service.Name)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownService, serviceID)
}

// Dates enumerates the candidate calendar dates offered by the wizard.
func (f *Flow) Dates() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return availability.Window(f.clock(), f.windowDays)
}

// SelectDate records the date and queries availability for it. Changing the
// date always re-queries; slots are never carried across dates.
func (f *Flow) SelectDate(ctx context.Context, date string) ([]petcare.TimeSlot, error) {
	f.mu.Lock()
	if f.step != StepDateTime {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: select date during %s", ErrWrongStep, f.step)
	}
	inWindow := false
	for _, d := range availability.Window(f.clock(), f.windowDays) {
		if d == date {
			inWindow = true
			break
		}
	}
	if !inWindow {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrDateOutOfWindow, date)
	}
	serviceID := f.service.ID
	f.date = date
	f.slot = nil
	f.mu.Unlock()

	return f.slots.SlotsFor(ctx, serviceID, date, "")
}

// SelectSlot records the chosen slot and advances to the details stage.
func (f *Flow) SelectSlot(slot petcare.TimeSlot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepDateTime {
		return fmt.Errorf("%w: select slot during %s", ErrWrongStep, f.step)
	}
	if f.date == "" {
		return ErrNoDateSelected
	}
	f.slot = &slot
	f.step = StepDetails
	return nil
}

// Back moves one stage backward. Only datetime -> service and
// details -> datetime exist; confirmation has no way back.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepDateTime:
		f.step = StepService
	case StepDetails:
		f.step = StepDateTime
	default:
		return fmt.Errorf("%w: back from %s", ErrWrongStep, f.step)
	}
	return nil
}

// StartOver clears every accumulated selection and returns to the service
// stage.
func (f *Flow) StartOver() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepService
	f.services = nil
	f.service = nil
	f.date = ""
	f.slot = nil
	f.confirmation = nil
}

// Confirmation returns the summary after a successful submission.
func (f *Flow) Confirmation() (*Confirmation, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.confirmation, f.confirmation != nil
}

// Submit validates the details stage and runs the creation sequence:
// resolve the owner (find by email, create when absent), create the pets in
// input order, then create the appointment. Each step consumes identifiers
// produced by the previous one, so the order is a hard dependency. A
// failure anywhere aborts the remaining steps and keeps the wizard on the
// details stage with the entered values intact; entities already created
// are not rolled back.
func (f *Flow) Submit(ctx context.Context, owner OwnerForm, pets []PetForm) (*Confirmation, error) {
	f.mu.Lock()
	if f.step != StepDetails {
		f.mu.Unlock()
		return nil, fmt.Errorf("%w: submit during %s", ErrWrongStep, f.step)
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true
	service := *f.service
	date := f.date
	slot := *f.slot
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	// Client-side validation; nothing reaches the network until it passes.
	if err := validateDetails(owner, pets); err != nil {
		return nil, err
	}

	ctx, span := flowTracer.Start(ctx, "booking.submit")
	defer span.End()
	span.SetAttributes(
		attribute.String("frontdesk.service_id", service.ID),
		attribute.String("frontdesk.date", date),
		attribute.Int("frontdesk.pets", len(pets)),
	)

	ownerID, err := f.resolveOwner(ctx, owner)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	petIDs := make([]string, 0, len(pets))
	for i, pet := range pets {
		created, err := f.api.CreatePet(ctx, ownerID, pet.input())
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("booking: create pet %d: %w", i+1, err)
		}
		petIDs = append(petIDs, created.ID)
	}

	appt, err := f.api.CreateAppointment(ctx, petcare.AppointmentRequest{
		OwnerID:        ownerID,
		PetIDs:         petIDs,
		ServiceID:      service.ID,
		ScheduledStart: slot.StartTime,
		ScheduledEnd:   slot.EndTime,
		CustomerNotes:  "",
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	confirmation := &Confirmation{
		Appointment: appt,
		Service:     service,
		Date:        date,
		Slot:        slot,
		Owner:       owner,
		Pets:        pets,
	}

	f.mu.Lock()
	f.confirmation = confirmation
	f.step = StepConfirmation
	f.mu.Unlock()

	f.logger.Info("booking created",
		"appointment_id", appt.ID,
		"service_id", service.ID,
		"date", date,
		"pets", len(petIDs),
	)
	return confirmation, nil
}

// resolveOwner is the find-or-create step. Reusing the first match keeps
// repeat customers from accumulating duplicate records; two concurrent
// bookings with the same new email can still race into duplicates, which
// the client accepts.
func (f *Flow) resolveOwner(ctx context.Context, owner OwnerForm) (string, error) {
	existing, err := f.api.SearchOwners(ctx, owner.Email, 1)
	if err != nil {
		return "", fmt.Errorf("booking: search owner: %w", err)
	}
	if len(existing) > 0 {
		return existing[0].ID, nil
	}
	created, err := f.api.CreateOwner(ctx, owner.input())
	if err != nil {
		return "", fmt.Errorf("booking: create owner: %w", err)
	}
	return created.ID, nil
}
