package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brightpaws/frontdesk/internal/booking"
	"github.com/brightpaws/frontdesk/internal/petcare"
	"github.com/brightpaws/frontdesk/pkg/logging"
)

// WidgetHandler serves the public booking wizard. Each visitor gets an
// isolated flow identified by an opaque id; no staff credential is involved
// anywhere on this surface.
type WidgetHandler struct {
	flows  *FlowStore
	logger *logging.Logger
}

// NewWidgetHandler creates the widget handler.
func NewWidgetHandler(flows *FlowStore, logger *logging.Logger) *WidgetHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WidgetHandler{flows: flows, logger: logger}
}

// Routes mounts the wizard endpoints.
func (h *WidgetHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{flowID}", func(r chi.Router) {
		r.Get("/", h.State)
		r.Get("/services", h.Services)
		r.Post("/service", h.SelectService)
		r.Get("/dates", h.Dates)
		r.Post("/date", h.SelectDate)
		r.Post("/slot", h.SelectSlot)
		r.Post("/back", h.Back)
		r.Post("/start-over", h.StartOver)
		r.Post("/book", h.Book)
	})
	return r
}

type sessionResponse struct {
	FlowID string       `json:"flow_id"`
	Step   booking.Step `json:"step"`
}

// CreateSession starts a fresh wizard.
func (h *WidgetHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	id, flow := h.flows.Create()
	writeJSON(w, http.StatusCreated, sessionResponse{FlowID: id, Step: flow.Step()})
}

func (h *WidgetHandler) flow(w http.ResponseWriter, r *http.Request) (*booking.Flow, string, bool) {
	id := chi.URLParam(r, "flowID")
	flow, ok := h.flows.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Booking session not found or expired")
		return nil, "", false
	}
	return flow, id, true
}

// State reports the wizard's current stage.
func (h *WidgetHandler) State(w http.ResponseWriter, r *http.Request) {
	flow, id, ok := h.flow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{FlowID: id, Step: flow.Step()})
}

// Services lists the bookable catalog.
func (h *WidgetHandler) Services(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	services, err := flow.Services(r.Context())
	if err != nil {
		writeAPIError(w, err, "Failed to load services")
		return
	}
	writeJSON(w, http.StatusOK, services)
}

// SelectService fixes the service and advances the wizard.
func (h *WidgetHandler) SelectService(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	var body struct {
		ServiceID string `json:"service_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := flow.SelectService(body.ServiceID); err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]booking.Step{"step": flow.Step()})
}

// Dates enumerates the offered calendar window.
func (h *WidgetHandler) Dates(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, flow.Dates())
}

// SelectDate records the date and returns its open slots.
func (h *WidgetHandler) SelectDate(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	var body struct {
		Date string `json:"date"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	slots, err := flow.SelectDate(r.Context(), body.Date)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// SelectSlot records the chosen slot and advances to the details stage.
func (h *WidgetHandler) SelectSlot(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	var slot petcare.TimeSlot
	if err := decodeJSON(r, &slot); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := flow.SelectSlot(slot); err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]booking.Step{"step": flow.Step()})
}

// Back moves the wizard one stage backward.
func (h *WidgetHandler) Back(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	if err := flow.Back(); err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]booking.Step{"step": flow.Step()})
}

// StartOver resets the wizard to the service stage.
func (h *WidgetHandler) StartOver(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	flow.StartOver()
	writeJSON(w, http.StatusOK, map[string]booking.Step{"step": flow.Step()})
}

type bookRequest struct {
	Owner booking.OwnerForm `json:"owner"`
	Pets  []booking.PetForm `json:"pets"`
}

// Book submits the details stage and creates the appointment.
func (h *WidgetHandler) Book(w http.ResponseWriter, r *http.Request) {
	flow, _, ok := h.flow(w, r)
	if !ok {
		return
	}
	var body bookRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	confirmation, err := flow.Submit(r.Context(), body.Owner, body.Pets)
	if err != nil {
		h.writeFlowError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, confirmation)
}

// writeFlowError maps wizard failures: stage violations are conflicts,
// input problems are 400/422, anything else is an upstream failure.
func (h *WidgetHandler) writeFlowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrWrongStep), errors.Is(err, booking.ErrSubmitInFlight):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrUnknownService),
		errors.Is(err, booking.ErrDateOutOfWindow),
		errors.Is(err, booking.ErrNoDateSelected):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNoPets):
		writeError(w, http.StatusUnprocessableEntity, "At least one pet is required")
	default:
		var apiErr *petcare.APIError
		if errors.As(err, &apiErr) || errors.Is(err, petcare.ErrUnauthorized) {
			writeAPIError(w, err, "Failed to create appointment")
			return
		}
		// Validation failures from the details stage.
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	}
}
