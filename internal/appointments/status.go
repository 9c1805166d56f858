// Package appointments encodes the appointment-status state machine: which
// statuses exist, which staff actions are legal from each, and the shared
// transition helper every view goes through. This package is the single
// source of truth for those rules.
package appointments

import "strings"

// Status is an appointment lifecycle state in canonical
// upper-case-with-underscore form.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusNoShow     Status = "NO_SHOW"
)

// Statuses lists the known enumeration in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCheckedIn,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// ParseStatus normalizes a wire status. Input is case-insensitive; unknown
// values are normalized and carried rather than rejected, since the server
// enumeration may grow.
func ParseStatus(raw string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(raw)))
}

// Known reports whether s is part of the current enumeration.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCheckedIn, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Terminal reports whether no further action may originate from s.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// DisplayName renders the status for humans ("CHECKED_IN" -> "Checked In").
func (s Status) DisplayName() string {
	words := strings.Split(strings.ToLower(string(s)), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Color is the display category a status maps to.
type Color string

const (
	ColorYellow  Color = "yellow"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorOrange  Color = "orange"
	ColorGreen   Color = "green"
	ColorRed     Color = "red"
	ColorNeutral Color = "gray"
)

// Color maps a status to its display category. The mapping is total: any
// unrecognized status degrades to the neutral category rather than failing,
// so a server-side enumeration extension never breaks the views.
func (s Status) Color() Color {
	switch s {
	case StatusPending:
		return ColorYellow
	case StatusConfirmed:
		return ColorBlue
	case StatusCheckedIn:
		return ColorPurple
	case StatusInProgress:
		return ColorOrange
	case StatusCompleted:
		return ColorGreen
	case StatusCancelled:
		return ColorRed
	case StatusNoShow:
		return ColorNeutral
	default:
		return ColorNeutral
	}
}
