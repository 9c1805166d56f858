package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpaws/frontdesk/internal/availability"
	"github.com/brightpaws/frontdesk/internal/petcare"
)

var testNow = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

// fakeBookingAPI records every network call the wizard makes. When the gate
// channels are set, CreateAppointment signals apptStarted and then blocks
// until apptGate is closed.
type fakeBookingAPI struct {
	mu          sync.Mutex
	calls       []string
	services    []petcare.Service
	foundOwners []petcare.Owner
	slots       []petcare.TimeSlot
	petErr      error
	apptErr     error
	nextPetID   int
	apptStarted chan struct{}
	apptGate    chan struct{}
}

func (f *fakeBookingAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeBookingAPI) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBookingAPI) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeBookingAPI) ListServices(context.Context) ([]petcare.Service, error) {
	f.record("list_services")
	return f.services, nil
}

func (f *fakeBookingAPI) SearchOwners(_ context.Context, email string, _ int) ([]petcare.Owner, error) {
	f.record("search_owners")
	return f.foundOwners, nil
}

func (f *fakeBookingAPI) CreateOwner(_ context.Context, input petcare.OwnerInput) (*petcare.Owner, error) {
	f.record("create_owner")
	return &petcare.Owner{ID: "own-new", FirstName: input.FirstName, LastName: input.LastName, Email: input.Email}, nil
}

func (f *fakeBookingAPI) CreatePet(_ context.Context, ownerID string, input petcare.PetInput) (*petcare.Pet, error) {
	f.record("create_pet")
	if f.petErr != nil {
		return nil, f.petErr
	}
	f.mu.Lock()
	f.nextPetID++
	id := fmt.Sprintf("pet-%d", f.nextPetID)
	f.mu.Unlock()
	return &petcare.Pet{ID: id, OwnerID: ownerID, Name: input.Name, Species: input.Species}, nil
}

func (f *fakeBookingAPI) CreateAppointment(_ context.Context, req petcare.AppointmentRequest) (*petcare.Appointment, error) {
	f.record("create_appointment")
	if f.apptStarted != nil {
		f.apptStarted <- struct{}{}
	}
	if f.apptGate != nil {
		<-f.apptGate
	}
	if f.apptErr != nil {
		return nil, f.apptErr
	}
	return &petcare.Appointment{
		ID:             "appt-1",
		OwnerID:        req.OwnerID,
		PetIDs:         req.PetIDs,
		ServiceID:      req.ServiceID,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Status:         "PENDING",
	}, nil
}

func (f *fakeBookingAPI) AvailableSlots(_ context.Context, _, _, _ string) ([]petcare.TimeSlot, error) {
	f.record("available_slots")
	return f.slots, nil
}

func groomingCatalog() []petcare.Service {
	return []petcare.Service{
		{ID: "svc-1", Name: "Full Groom", Price: 4500, DurationMinutes: 60},
		{ID: "svc-2", Name: "Puppy Training", Price: 8000, DurationMinutes: 45},
	}
}

func tenAMSlot() petcare.TimeSlot {
	start := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)
	return petcare.TimeSlot{StartTime: start, EndTime: start.Add(time.Hour), StaffIDs: []string{"stf-1"}}
}

func newTestFlow(api *fakeBookingAPI) *Flow {
	return NewFlow(api, availability.NewQuery(api, nil), WithClock(func() time.Time { return testNow }))
}

// advanceToDetails walks a flow to the details stage with svc-1 and the
// 10:00 slot selected.
func advanceToDetails(t *testing.T, f *Flow, api *fakeBookingAPI) {
	t.Helper()
	_, err := f.Services(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.SelectService("svc-1"))
	api.slots = []petcare.TimeSlot{tenAMSlot()}
	_, err = f.SelectDate(context.Background(), "2026-08-29")
	require.NoError(t, err)
	require.NoError(t, f.SelectSlot(tenAMSlot()))
}

func janeDoe() OwnerForm {
	return OwnerForm{FirstName: "Jane", LastName: "Doe", Email: "jane@x.com", Phone: "555-0100"}
}

func rex() PetForm {
	return PetForm{Name: "Rex", Species: "dog"}
}

func TestHappyPathWithExistingOwner(t *testing.T) {
	api := &fakeBookingAPI{
		services:    groomingCatalog(),
		foundOwners: []petcare.Owner{{ID: "own-1", Email: "jane@x.com"}},
	}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)
	networkCallsBefore := api.totalCalls()

	conf, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.NoError(t, err)

	// Exactly three calls: owner search, pet create, appointment create.
	assert.Equal(t, 3, api.totalCalls()-networkCallsBefore)
	assert.Equal(t, 1, api.callCount("search_owners"))
	assert.Equal(t, 0, api.callCount("create_owner"), "matching email must not create an owner")
	assert.Equal(t, 1, api.callCount("create_pet"))
	assert.Equal(t, 1, api.callCount("create_appointment"))

	assert.Equal(t, StepConfirmation, f.Step())
	assert.Equal(t, "Full Groom", conf.Service.Name)
	assert.Equal(t, "2026-08-29", conf.Date)
	assert.Equal(t, 10, conf.Slot.StartTime.Hour())
	assert.Equal(t, "Rex", conf.Pets[0].Name)
	assert.Equal(t, "own-1", conf.Appointment.OwnerID)
	assert.Equal(t, []string{"pet-1"}, conf.Appointment.PetIDs)
}

func TestNewOwnerCreatedExactlyOnce(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog()}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)

	_, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.NoError(t, err)

	assert.Equal(t, 1, api.callCount("search_owners"))
	assert.Equal(t, 1, api.callCount("create_owner"))
}

func TestPetFailureAbortsAppointmentCreation(t *testing.T) {
	api := &fakeBookingAPI{
		services:    groomingCatalog(),
		foundOwners: []petcare.Owner{{ID: "own-1"}},
		petErr:      &petcare.APIError{Operation: "create_pet", StatusCode: 422, Detail: "Species is required"},
	}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)

	_, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.Error(t, err)
	assert.Equal(t, 0, api.callCount("create_appointment"), "appointment creation must not be attempted")
	assert.Equal(t, StepDetails, f.Step(), "wizard stays on details for correction")
	assert.Equal(t, "Species is required", petcare.Message(err, "Failed to create appointment"))

	// A corrected resubmission succeeds on the same flow.
	api.petErr = nil
	conf, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, f.Step())
	assert.NotNil(t, conf.Appointment)
}

func TestAppointmentFailureKeepsDetailsStage(t *testing.T) {
	api := &fakeBookingAPI{
		services:    groomingCatalog(),
		foundOwners: []petcare.Owner{{ID: "own-1"}},
		apptErr:     &petcare.APIError{Operation: "create_appointment", StatusCode: 409, Detail: "Slot no longer available"},
	}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)

	_, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.Error(t, err)
	assert.Equal(t, StepDetails, f.Step())
	_, ok := f.Confirmation()
	assert.False(t, ok)
}

func TestValidationStopsBeforeNetwork(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog()}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)
	before := api.totalCalls()

	tests := []struct {
		name  string
		owner OwnerForm
		pets  []PetForm
	}{
		{"missing email", OwnerForm{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"}, []PetForm{rex()}},
		{"malformed email", OwnerForm{FirstName: "Jane", LastName: "Doe", Email: "not-an-email", Phone: "555-0100"}, []PetForm{rex()}},
		{"no pets", janeDoe(), nil},
		{"bad species", janeDoe(), []PetForm{{Name: "Rex", Species: "dragon"}}},
		{"missing pet name", janeDoe(), []PetForm{{Species: "dog"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Submit(context.Background(), tt.owner, tt.pets)
			require.Error(t, err)
		})
	}
	assert.Equal(t, before, api.totalCalls(), "validation failures must not reach the network")
}

func TestPetsCreatedInInputOrder(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog(), foundOwners: []petcare.Owner{{ID: "own-1"}}}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)

	conf, err := f.Submit(context.Background(), janeDoe(), []PetForm{
		{Name: "Rex", Species: "dog"},
		{Name: "Whiskers", Species: "cat"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"pet-1", "pet-2"}, conf.Appointment.PetIDs)
}

func TestBackNavigation(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog()}
	f := newTestFlow(api)

	// No back from the first stage.
	assert.ErrorIs(t, f.Back(), ErrWrongStep)

	advanceToDetails(t, f, api)
	require.NoError(t, f.Back())
	assert.Equal(t, StepDateTime, f.Step())
	require.NoError(t, f.Back())
	assert.Equal(t, StepService, f.Step())
}

func TestNoBackFromConfirmation(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog(), foundOwners: []petcare.Owner{{ID: "own-1"}}}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)
	_, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.NoError(t, err)

	assert.ErrorIs(t, f.Back(), ErrWrongStep)
}

func TestStartOverResetsEverything(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog(), foundOwners: []petcare.Owner{{ID: "own-1"}}}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)
	_, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	require.NoError(t, err)

	f.StartOver()
	assert.Equal(t, StepService, f.Step())
	_, ok := f.Confirmation()
	assert.False(t, ok)

	// The catalog is fetched again on the next pass.
	listCalls := api.callCount("list_services")
	_, err = f.Services(context.Background())
	require.NoError(t, err)
	assert.Equal(t, listCalls+1, api.callCount("list_services"))
}

func TestSelectServiceValidation(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog()}
	f := newTestFlow(api)
	_, err := f.Services(context.Background())
	require.NoError(t, err)

	assert.ErrorIs(t, f.SelectService("svc-404"), ErrUnknownService)
	require.NoError(t, f.SelectService("svc-1"))
	assert.ErrorIs(t, f.SelectService("svc-2"), ErrWrongStep)
}

func TestSelectDateOutsideWindow(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog()}
	f := newTestFlow(api)
	_, err := f.Services(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.SelectService("svc-1"))

	_, err = f.SelectDate(context.Background(), "2027-01-01")
	assert.ErrorIs(t, err, ErrDateOutOfWindow)
}

func TestDatesWindow(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog()}
	f := newTestFlow(api)

	dates := f.Dates()
	require.Len(t, dates, 14)
	assert.Equal(t, "2026-08-28", dates[0])
	assert.Equal(t, "2026-09-10", dates[13])
}

func TestServiceChangeClearsDateAndSlot(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog(), slots: []petcare.TimeSlot{tenAMSlot()}}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)

	// Walk back to the service stage and pick a different service.
	require.NoError(t, f.Back())
	require.NoError(t, f.Back())
	require.NoError(t, f.SelectService("svc-2"))

	// The date and slot belonged to svc-1 and must not survive; a slot
	// cannot be accepted until a date is re-selected for the new service.
	assert.ErrorIs(t, f.SelectSlot(tenAMSlot()), ErrNoDateSelected)

	// Re-selecting the date queries availability afresh for svc-2.
	before := api.callCount("available_slots")
	_, err := f.SelectDate(context.Background(), "2026-08-29")
	require.NoError(t, err)
	assert.Equal(t, before+1, api.callCount("available_slots"))
}

func TestSubmitWhileSubmittingIsNoOp(t *testing.T) {
	api := &fakeBookingAPI{
		services:    groomingCatalog(),
		foundOwners: []petcare.Owner{{ID: "own-1"}},
		slots:       []petcare.TimeSlot{tenAMSlot()},
		apptStarted: make(chan struct{}),
		apptGate:    make(chan struct{}),
	}
	f := newTestFlow(api)
	advanceToDetails(t, f, api)

	type result struct {
		conf *Confirmation
		err  error
	}
	firstDone := make(chan result)
	go func() {
		conf, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
		firstDone <- result{conf, err}
	}()

	// Park the first submission inside the appointment-creation call.
	<-api.apptStarted
	callsWhileBlocked := api.totalCalls()

	_, err := f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Equal(t, callsWhileBlocked, api.totalCalls(), "second submission must make no network calls")

	close(api.apptGate)
	first := <-firstDone
	require.NoError(t, first.err)
	require.NotNil(t, first.conf)
	assert.Equal(t, StepConfirmation, f.Step())

	// The flag is cleared once the first submission finishes: a further
	// submit fails on the stage check, not the in-flight guard.
	_, err = f.Submit(context.Background(), janeDoe(), []PetForm{rex()})
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestDateChangeRequeriesAvailability(t *testing.T) {
	api := &fakeBookingAPI{services: groomingCatalog(), slots: []petcare.TimeSlot{tenAMSlot()}}
	f := newTestFlow(api)
	_, err := f.Services(context.Background())
	require.NoError(t, err)
	require.NoError(t, f.SelectService("svc-1"))

	_, err = f.SelectDate(context.Background(), "2026-08-29")
	require.NoError(t, err)
	_, err = f.SelectDate(context.Background(), "2026-08-30")
	require.NoError(t, err)
	assert.Equal(t, 2, api.callCount("available_slots"))
}
