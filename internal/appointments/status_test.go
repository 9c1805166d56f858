package appointments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusNormalizes(t *testing.T) {
	assert.Equal(t, StatusCheckedIn, ParseStatus("checked_in"))
	assert.Equal(t, StatusPending, ParseStatus("  Pending "))
	assert.Equal(t, Status("SOMETHING_NEW"), ParseStatus("something_new"))
}

func TestKnown(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Known(), "status %s should be known", s)
	}
	assert.False(t, Status("WAITLISTED").Known())
}

func TestTerminal(t *testing.T) {
	terminal := map[Status]bool{
		StatusCompleted: true,
		StatusCancelled: true,
		StatusNoShow:    true,
	}
	for _, s := range Statuses {
		assert.Equal(t, terminal[s], s.Terminal(), "status %s", s)
	}
}

func TestColorMappingIsTotal(t *testing.T) {
	expected := map[Status]Color{
		StatusPending:    ColorYellow,
		StatusConfirmed:  ColorBlue,
		StatusCheckedIn:  ColorPurple,
		StatusInProgress: ColorOrange,
		StatusCompleted:  ColorGreen,
		StatusCancelled:  ColorRed,
		StatusNoShow:     ColorNeutral,
	}
	for _, s := range Statuses {
		assert.Equal(t, expected[s], s.Color(), "status %s", s)
	}

	// An unrecognized status degrades to neutral, never an error.
	assert.Equal(t, ColorNeutral, ParseStatus("waitlisted").Color())
	assert.Equal(t, ColorNeutral, Status("").Color())
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Checked In", StatusCheckedIn.DisplayName())
	assert.Equal(t, "No Show", StatusNoShow.DisplayName())
	assert.Equal(t, "Pending", StatusPending.DisplayName())
}
