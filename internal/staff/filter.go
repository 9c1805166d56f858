// Package staff backs the operations dashboard: filtered listings of the
// day's appointments, daily statistics, and CSV export.
package staff

import (
	"strings"

	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/petcare"
)

// Filter narrows a listing after it has been fetched. Status filtering is
// pushed to the server when possible; the free-text search always runs
// locally over the expanded owner and pet fields.
type Filter struct {
	Status appointments.Status `json:"status,omitempty"`
	Search string              `json:"search,omitempty"`
}

// Zero reports whether the filter passes everything through.
func (f Filter) Zero() bool {
	return f.Status == "" && strings.TrimSpace(f.Search) == ""
}

// Apply returns the appointments matching the filter, preserving order.
func (f Filter) Apply(appts []petcare.Appointment) []petcare.Appointment {
	if f.Zero() {
		return appts
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]petcare.Appointment, 0, len(appts))
	for _, appt := range appts {
		if f.Status != "" && appointments.ParseStatus(appt.Status) != f.Status {
			continue
		}
		if needle != "" && !matchesSearch(appt, needle) {
			continue
		}
		out = append(out, appt)
	}
	return out
}

// matchesSearch checks the owner's name and phone and every pet name for a
// case-insensitive substring match.
func matchesSearch(appt petcare.Appointment, needle string) bool {
	if appt.Owner != nil {
		full := strings.ToLower(appt.Owner.FirstName + " " + appt.Owner.LastName)
		if strings.Contains(full, needle) {
			return true
		}
		if strings.Contains(strings.ToLower(appt.Owner.Phone), needle) {
			return true
		}
	}
	for _, pet := range appt.Pets {
		if strings.Contains(strings.ToLower(pet.Name), needle) {
			return true
		}
	}
	return false
}
