package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/availability"
	"github.com/brightpaws/frontdesk/internal/bulk"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/internal/staff"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// DashboardHandler serves the staff operations dashboard: filtered
// listings, per-appointment transitions, bulk check-in, CSV export, and
// daily stats. Every mutation goes through the shared transitioner, and
// every response carries re-fetched server state.
type DashboardHandler struct {
	staff        *staff.Service
	transitioner *appointments.Transitioner
	slots        *availability.Query
	api          appointments.API
	logger       *logging.Logger
	clock        func() time.Time
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(svc *staff.Service, transitioner *appointments.Transitioner, slots *availability.Query, api appointments.API, logger *logging.Logger) *DashboardHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardHandler{
		staff:        svc,
		transitioner: transitioner,
		slots:        slots,
		api:          api,
		logger:       logger,
		clock:        time.Now,
	}
}

// WithClock overrides the wall clock (tests).
func (h *DashboardHandler) WithClock(clock func() time.Time) *DashboardHandler {
	h.clock = clock
	return h
}

// Routes mounts the dashboard endpoints.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/appointments", h.List)
	r.Post("/appointments/bulk/check-in", h.BulkCheckIn)
	r.Route("/appointments/{appointmentID}", func(r chi.Router) {
		r.Get("/", h.Detail)
		r.Get("/slots", h.RescheduleSlots)
		r.Post("/check-in", h.transition(appointments.ActionCheckIn))
		r.Post("/start", h.transition(appointments.ActionStart))
		r.Post("/complete", h.Complete)
		r.Post("/cancel", h.Cancel)
		r.Post("/no-show", h.NoShow)
		r.Post("/reschedule", h.Reschedule)
	})
	r.Get("/export.csv", h.ExportCSV)
	r.Get("/stats/daily", h.Stats)
	return r
}

// appointmentView decorates a record with the derived presentation fields
// the dashboard renders: label, color category, and enabled actions.
type appointmentView struct {
	petcare.Appointment
	StatusLabel string                `json:"status_label"`
	StatusColor appointments.Color    `json:"status_color"`
	Actions     []appointments.Action `json:"actions"`
}

func viewOf(appt petcare.Appointment) appointmentView {
	status := appointments.ParseStatus(appt.Status)
	return appointmentView{
		Appointment: appt,
		StatusLabel: status.DisplayName(),
		StatusColor: status.Color(),
		Actions:     appointments.Allowed(status),
	}
}

func viewsOf(appts []petcare.Appointment) []appointmentView {
	views := make([]appointmentView, 0, len(appts))
	for _, appt := range appts {
		views = append(views, viewOf(appt))
	}
	return views
}

func (h *DashboardHandler) today() string {
	return h.clock().Format(petcare.DateFormat)
}

func listFilter(r *http.Request) staff.Filter {
	return staff.Filter{
		Status: appointments.ParseStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	}
}

// List returns one date's appointments, filtered. Defaults to today.
func (h *DashboardHandler) List(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today()
	}
	appts, err := h.staff.For(r.Context(), date, listFilter(r))
	if err != nil {
		writeAPIError(w, err, "Failed to load appointments")
		return
	}
	writeJSON(w, http.StatusOK, viewsOf(appts))
}

// Detail returns the authoritative record for one appointment.
func (h *DashboardHandler) Detail(w http.ResponseWriter, r *http.Request) {
	appt, err := h.api.GetAppointment(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeAPIError(w, err, "Failed to load appointment")
		return
	}
	writeJSON(w, http.StatusOK, viewOf(*appt))
}

// transition builds a handler for the parameterless transitions.
func (h *DashboardHandler) transition(action appointments.Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.applyTransition(w, r, action, appointments.TransitionParams{})
	}
}

// Complete finishes an in-progress appointment with optional notes.
func (h *DashboardHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	_ = decodeJSON(r, &body)
	h.applyTransition(w, r, appointments.ActionComplete, appointments.TransitionParams{Notes: body.Notes})
}

// Cancel cancels an appointment with an optional reason.
func (h *DashboardHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reason string `json:"reason"`
	}
	_ = decodeJSON(r, &body)
	h.applyTransition(w, r, appointments.ActionCancel, appointments.TransitionParams{Reason: body.Reason})
}

// NoShow records a no-show. The destructive transition must be explicitly
// confirmed by the operator.
func (h *DashboardHandler) NoShow(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Confirmed bool `json:"confirmed"`
	}
	_ = decodeJSON(r, &body)
	if appointments.ActionNoShow.RequiresConfirmation() && !body.Confirmed {
		writeError(w, http.StatusConflict, "Confirmation required to mark as no-show")
		return
	}
	h.applyTransition(w, r, appointments.ActionNoShow, appointments.TransitionParams{})
}

// Reschedule moves an appointment into a freshly queried slot.
func (h *DashboardHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Slot *petcare.TimeSlot `json:"slot"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	h.applyTransition(w, r, appointments.ActionReschedule, appointments.TransitionParams{Slot: body.Slot})
}

// applyTransition fetches the current record first so the transition table
// can refuse the action before anything is dispatched; the server stays the
// final authority. The bulk runner skips this and goes by id alone.
func (h *DashboardHandler) applyTransition(w http.ResponseWriter, r *http.Request, action appointments.Action, params appointments.TransitionParams) {
	id := chi.URLParam(r, "appointmentID")
	appt, err := h.api.GetAppointment(r.Context(), id)
	if err != nil {
		writeAPIError(w, err, "Failed to load appointment")
		return
	}
	refreshed, err := h.transitioner.Apply(r.Context(), appt, action, params)
	if err != nil {
		h.writeTransitionError(w, action, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(*refreshed))
}

func (h *DashboardHandler) writeTransitionError(w http.ResponseWriter, action appointments.Action, err error) {
	var illegal *appointments.IllegalTransitionError
	switch {
	case errors.Is(err, appointments.ErrInFlight):
		writeError(w, http.StatusConflict, "Action already in progress")
	case errors.Is(err, appointments.ErrSlotRequired):
		writeError(w, http.StatusBadRequest, "A time slot is required to reschedule")
	case errors.As(err, &illegal):
		writeError(w, http.StatusConflict, illegal.Error())
	default:
		writeAPIError(w, err, action.FallbackMessage())
	}
}

// RescheduleSlots queries fresh availability for moving one appointment.
func (h *DashboardHandler) RescheduleSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	appt, err := h.api.GetAppointment(r.Context(), chi.URLParam(r, "appointmentID"))
	if err != nil {
		writeAPIError(w, err, "Failed to load appointment")
		return
	}
	slots, err := h.slots.SlotsFor(r.Context(), appt.ServiceID, date, "")
	if err != nil {
		writeAPIError(w, err, "Failed to load availability")
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

type bulkRequest struct {
	IDs       []string `json:"ids"`
	Confirmed bool     `json:"confirmed"`
}

type bulkResponse struct {
	Summary      bulk.Summary      `json:"summary"`
	Message      string            `json:"message"`
	Appointments []appointmentView `json:"appointments"`
}

// BulkCheckIn checks in a selection of appointments one by one and returns
// the re-fetched listing alongside the per-item outcome.
func (h *DashboardHandler) BulkCheckIn(w http.ResponseWriter, r *http.Request) {
	var body bulkRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var refreshed []appointmentView
	runner := bulk.NewRunner(h.transitioner,
		func(string) bool { return body.Confirmed },
		bulk.WithLogger(h.logger),
		bulk.WithRefresher(func(ctx context.Context) error {
			appts, err := h.staff.Today(ctx, staff.Filter{})
			if err != nil {
				return err
			}
			refreshed = viewsOf(appts)
			return nil
		}),
	)

	summary, err := runner.Run(r.Context(), body.IDs, appointments.ActionCheckIn, appointments.TransitionParams{})
	if err != nil {
		writeAPIError(w, err, appointments.ActionCheckIn.FallbackMessage())
		return
	}
	writeJSON(w, http.StatusOK, bulkResponse{
		Summary:      summary,
		Message:      summary.String(),
		Appointments: refreshed,
	})
}

// ExportCSV streams one date's listing as a CSV download.
func (h *DashboardHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today()
	}
	appts, err := h.staff.For(r.Context(), date, listFilter(r))
	if err != nil {
		writeAPIError(w, err, "Failed to export appointments")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+staff.ExportFilename(date)+`"`)
	if err := staff.WriteCSV(w, appts); err != nil {
		h.logger.Warn("csv export failed", "date", date, "error", err)
	}
}

// Stats returns the daily summary card values.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.today()
	}
	stats, err := h.staff.Stats(r.Context(), date)
	if err != nil {
		writeAPIError(w, err, "Failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
