package staff

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/petcare"
)

// csvHeader is the fixed export column order.
var csvHeader = []string{"Date", "Time", "Customer", "Pet", "Service", "Status", "Staff"}

// ExportFilename names a CSV download for one calendar date, e.g.
// "appointments-2026-08-28.csv".
func ExportFilename(date string) string {
	return fmt.Sprintf("appointments-%s.csv", date)
}

// WriteCSV renders the listing as a CSV download. Missing expansions fall
// back to placeholders rather than empty cells so the sheet stays readable.
func WriteCSV(w io.Writer, appts []petcare.Appointment) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("staff: write csv header: %w", err)
	}
	for _, appt := range appts {
		if err := cw.Write(csvRow(appt)); err != nil {
			return fmt.Errorf("staff: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvRow(appt petcare.Appointment) []string {
	customer := "N/A"
	if appt.Owner != nil {
		customer = strings.TrimSpace(appt.Owner.FirstName + " " + appt.Owner.LastName)
	}
	pets := "N/A"
	if len(appt.Pets) > 0 {
		names := make([]string, 0, len(appt.Pets))
		for _, pet := range appt.Pets {
			names = append(names, pet.Name)
		}
		pets = strings.Join(names, ", ")
	}
	service := "N/A"
	if appt.Service != nil {
		service = appt.Service.Name
	}
	staffName := "Unassigned"
	if appt.Staff != nil {
		staffName = strings.TrimSpace(appt.Staff.FirstName + " " + appt.Staff.LastName)
	}
	return []string{
		appt.ScheduledStart.Format(petcare.DateFormat),
		appt.ScheduledStart.Format("15:04"),
		customer,
		pets,
		service,
		appointments.ParseStatus(appt.Status).DisplayName(),
		staffName,
	}
}
