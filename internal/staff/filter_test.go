package staff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpaws/frontdesk/internal/appointments"
	"github.com/brightpaws/frontdesk/internal/petcare"
)

func sampleListing() []petcare.Appointment {
	return []petcare.Appointment{
		{
			ID:     "appt-1",
			Status: "PENDING",
			Owner:  &petcare.Owner{FirstName: "Jane", LastName: "Doe", Phone: "555-0100"},
			Pets:   []petcare.Pet{{Name: "Rex"}},
		},
		{
			ID:     "appt-2",
			Status: "CHECKED_IN",
			Owner:  &petcare.Owner{FirstName: "Sam", LastName: "Smith", Phone: "555-0199"},
			Pets:   []petcare.Pet{{Name: "Whiskers"}, {Name: "Mittens"}},
		},
		{
			ID:     "appt-3",
			Status: "PENDING",
			// No expansions on this record.
		},
	}
}

func ids(appts []petcare.Appointment) []string {
	out := make([]string, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}

func TestFilterZeroPassesEverything(t *testing.T) {
	listing := sampleListing()
	assert.Equal(t, listing, Filter{}.Apply(listing))
	assert.True(t, Filter{Search: "   "}.Zero())
}

func TestFilterByStatus(t *testing.T) {
	got := Filter{Status: appointments.StatusPending}.Apply(sampleListing())
	assert.Equal(t, []string{"appt-1", "appt-3"}, ids(got))
}

func TestFilterSearchOwnerName(t *testing.T) {
	got := Filter{Search: "jane d"}.Apply(sampleListing())
	assert.Equal(t, []string{"appt-1"}, ids(got))
}

func TestFilterSearchPhone(t *testing.T) {
	got := Filter{Search: "0199"}.Apply(sampleListing())
	assert.Equal(t, []string{"appt-2"}, ids(got))
}

func TestFilterSearchPetName(t *testing.T) {
	got := Filter{Search: "mitt"}.Apply(sampleListing())
	assert.Equal(t, []string{"appt-2"}, ids(got))
}

func TestFilterSearchSkipsMissingExpansions(t *testing.T) {
	// appt-3 has no owner or pets; a search must simply not match it.
	got := Filter{Search: "rex"}.Apply(sampleListing())
	assert.Equal(t, []string{"appt-1"}, ids(got))
}

func TestFilterStatusAndSearchCombine(t *testing.T) {
	got := Filter{Status: appointments.StatusPending, Search: "smith"}.Apply(sampleListing())
	require.Empty(t, got)

	got = Filter{Status: appointments.StatusCheckedIn, Search: "smith"}.Apply(sampleListing())
	assert.Equal(t, []string{"appt-2"}, ids(got))
}
