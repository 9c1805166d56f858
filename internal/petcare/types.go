// Package petcare provides a typed client for the remote pet-care
// appointment-management API. The client owns transport concerns only;
// scheduling rules and persistence live on the server.
package petcare

import "time"

// DateFormat is the calendar-date wire format used by the API.
const DateFormat = "2006-01-02"

// Service is a bookable grooming/training service. Fetched, never mutated.
type Service struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Category             string `json:"category,omitempty"`
	Price                int    `json:"price"` // minor currency units
	DurationMinutes      int    `json:"duration_minutes"`
	SetupBufferMinutes   int    `json:"setup_buffer_minutes,omitempty"`
	CleanupBufferMinutes int    `json:"cleanup_buffer_minutes,omitempty"`
	RequiresVaccination  bool   `json:"requires_vaccination,omitempty"`
}

// TimeSlot is a candidate appointment window for one (service, date) query.
// Slots are ephemeral: nothing is reserved until an appointment referencing
// the slot is created.
type TimeSlot struct {
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	StaffIDs        []string  `json:"staff_ids,omitempty"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
}

// OwnerInput carries the contact fields collected by the booking form.
type OwnerInput struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
}

// Owner is a customer record as returned by the API.
type Owner struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// PetInput carries the pet fields collected by the booking form.
type PetInput struct {
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
	Weight  *int   `json:"weight,omitempty"` // pounds
}

// Pet belongs to exactly one owner.
type Pet struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed,omitempty"`
	Weight  *int   `json:"weight,omitempty"`
}

// Staff is the subset of a staff record the dashboard displays.
type Staff struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title,omitempty"`
}

// AppointmentRequest is the payload for creating an appointment.
type AppointmentRequest struct {
	OwnerID        string    `json:"owner_id"`
	PetIDs         []string  `json:"pet_ids"`
	ServiceID      string    `json:"service_id"`
	StaffID        string    `json:"staff_id,omitempty"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	CustomerNotes  string    `json:"customer_notes"`
}

// Appointment is the central entity. Status strings are carried verbatim;
// interpretation lives in the appointments package.
type Appointment struct {
	ID             string    `json:"id"`
	OwnerID        string    `json:"owner_id"`
	PetIDs         []string  `json:"pet_ids"`
	ServiceID      string    `json:"service_id"`
	StaffID        string    `json:"staff_id,omitempty"`
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	Status         string    `json:"status"`
	CustomerNotes  string    `json:"customer_notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Expansions included by the staff endpoints.
	Owner   *Owner   `json:"owner,omitempty"`
	Pets    []Pet    `json:"pets,omitempty"`
	Service *Service `json:"service,omitempty"`
	Staff   *Staff   `json:"staff,omitempty"`
}

// RescheduleRequest moves an appointment to a new window without changing
// its status.
type RescheduleRequest struct {
	ScheduledStart time.Time `json:"scheduled_start"`
	ScheduledEnd   time.Time `json:"scheduled_end"`
	StaffID        string    `json:"staff_id,omitempty"`
}

// DailyStats is the dashboard summary for one calendar date.
type DailyStats struct {
	TotalAppointments int `json:"total_appointments"`
	Completed         int `json:"completed"`
	Pending           int `json:"pending"`
	Cancelled         int `json:"cancelled"`
	NoShows           int `json:"no_shows"`
	Revenue           int `json:"revenue"` // minor currency units
}
