package petcare

import (
	"context"
	"net/http"
	"net/url"
)

// AvailableSlots fetches the candidate time slots for a service on one
// calendar date (YYYY-MM-DD). Nothing is reserved by the query; a returned
// slot may be gone by the time an appointment referencing it is created.
func (c *Client) AvailableSlots(ctx context.Context, serviceID, date, staffID string) ([]TimeSlot, error) {
	query := url.Values{}
	query.Set("service_id", serviceID)
	query.Set("date", date)
	if staffID != "" {
		query.Set("staff_id", staffID)
	}

	var slots []TimeSlot
	if err := c.do(ctx, "available_slots", http.MethodGet, "/appointments/availability/slots", query, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// NextAvailableSlot finds the earliest open slot on or after startDate.
func (c *Client) NextAvailableSlot(ctx context.Context, serviceID, startDate, staffID string) (*TimeSlot, error) {
	query := url.Values{}
	query.Set("service_id", serviceID)
	query.Set("start_date", startDate)
	if staffID != "" {
		query.Set("staff_id", staffID)
	}

	var slot TimeSlot
	if err := c.do(ctx, "next_available_slot", http.MethodGet, "/appointments/availability/next", query, nil, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

// CreateAppointment books the appointment assembled by the wizard.
func (c *Client) CreateAppointment(ctx context.Context, req AppointmentRequest) (*Appointment, error) {
	var appt Appointment
	if err := c.do(ctx, "create_appointment", http.MethodPost, "/appointments", nil, req, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListAppointmentsParams narrows an appointment listing. Date and the
// StartDate/EndDate pair are mutually exclusive; Date wins when both are set.
type ListAppointmentsParams struct {
	Date      string
	StartDate string
	EndDate   string
	Status    string
}

// ListAppointments fetches appointments for the staff views.
func (c *Client) ListAppointments(ctx context.Context, params ListAppointmentsParams) ([]Appointment, error) {
	query := url.Values{}
	switch {
	case params.Date != "":
		query.Set("date", params.Date)
	case params.StartDate != "" && params.EndDate != "":
		query.Set("start_date", params.StartDate)
		query.Set("end_date", params.EndDate)
	}
	if params.Status != "" {
		query.Set("status", params.Status)
	}

	var appts []Appointment
	if err := c.do(ctx, "list_appointments", http.MethodGet, "/appointments", query, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// GetAppointment fetches the authoritative record for one appointment.
func (c *Client) GetAppointment(ctx context.Context, appointmentID string) (*Appointment, error) {
	var appt Appointment
	if err := c.do(ctx, "get_appointment", http.MethodGet, "/appointments/"+appointmentID, nil, nil, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

func (c *Client) patchAppointment(ctx context.Context, op, appointmentID, suffix string, body any) (*Appointment, error) {
	var appt Appointment
	if err := c.do(ctx, op, http.MethodPatch, "/appointments/"+appointmentID+suffix, nil, body, &appt); err != nil {
		return nil, err
	}
	return &appt, nil
}

// CheckIn marks a pending appointment as checked in.
func (c *Client) CheckIn(ctx context.Context, appointmentID string) (*Appointment, error) {
	return c.patchAppointment(ctx, "check_in", appointmentID, "/check-in", nil)
}

// Start marks a checked-in appointment as in progress.
func (c *Client) Start(ctx context.Context, appointmentID string) (*Appointment, error) {
	return c.patchAppointment(ctx, "start", appointmentID, "/start", nil)
}

// Complete finishes an in-progress appointment with optional service notes.
func (c *Client) Complete(ctx context.Context, appointmentID, notes string) (*Appointment, error) {
	body := struct {
		Notes string `json:"notes,omitempty"`
	}{Notes: notes}
	return c.patchAppointment(ctx, "complete", appointmentID, "/complete", body)
}

// Cancel cancels an appointment with an optional free-text reason.
func (c *Client) Cancel(ctx context.Context, appointmentID, reason string) (*Appointment, error) {
	body := struct {
		Reason string `json:"reason,omitempty"`
	}{Reason: reason}
	return c.patchAppointment(ctx, "cancel", appointmentID, "/cancel", body)
}

// MarkNoShow records that the customer never arrived.
func (c *Client) MarkNoShow(ctx context.Context, appointmentID string) (*Appointment, error) {
	return c.patchAppointment(ctx, "no_show", appointmentID, "/no-show", nil)
}

// Reschedule moves an appointment to a new window. The status is unchanged.
func (c *Client) Reschedule(ctx context.Context, appointmentID string, req RescheduleRequest) (*Appointment, error) {
	return c.patchAppointment(ctx, "reschedule", appointmentID, "/reschedule", req)
}
