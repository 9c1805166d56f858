package appointments

// Action is a staff operation on an appointment.
type Action string

const (
	ActionCheckIn    Action = "check_in"
	ActionStart      Action = "start"
	ActionComplete   Action = "complete"
	ActionCancel     Action = "cancel"
	ActionNoShow     Action = "no_show"
	ActionReschedule Action = "reschedule"
)

// rule is one row of the transition table: the states an action may be
// invoked from. anyNonTerminal rows accept every non-terminal state.
type rule struct {
	from           []Status
	anyNonTerminal bool
	fallback       string
	confirm        bool // requires interactive confirmation before dispatch
}

// transitionTable is the single source of truth for action preconditions.
// Every view that renders action controls derives its enabled set from this
// table; duplicating the rules elsewhere is a defect.
var transitionTable = map[Action]rule{
	ActionCheckIn:    {from: []Status{StatusPending}, fallback: "Failed to check in"},
	ActionStart:      {from: []Status{StatusCheckedIn}, fallback: "Failed to start service"},
	ActionComplete:   {from: []Status{StatusInProgress}, fallback: "Failed to complete service"},
	ActionCancel:     {anyNonTerminal: true, fallback: "Failed to cancel appointment"},
	ActionNoShow:     {anyNonTerminal: true, fallback: "Failed to mark as no-show", confirm: true},
	ActionReschedule: {anyNonTerminal: true, fallback: "Failed to reschedule"},
}

// actionOrder fixes the order actions are presented in.
var actionOrder = []Action{
	ActionCheckIn,
	ActionStart,
	ActionComplete,
	ActionReschedule,
	ActionCancel,
	ActionNoShow,
}

// Can reports whether action may be invoked on an appointment in status s.
func Can(action Action, s Status) bool {
	r, ok := transitionTable[action]
	if !ok || s.Terminal() {
		return false
	}
	if r.anyNonTerminal {
		return true
	}
	for _, from := range r.from {
		if s == from {
			return true
		}
	}
	return false
}

// Allowed returns the enabled action set for status s in presentation
// order. Terminal statuses yield an empty set. Unknown statuses keep the
// any-non-terminal actions available, matching how the views degrade.
func Allowed(s Status) []Action {
	if s.Terminal() {
		return nil
	}
	var actions []Action
	for _, a := range actionOrder {
		if Can(a, s) {
			actions = append(actions, a)
		}
	}
	return actions
}

// FallbackMessage is the static per-action message shown when the server
// supplies no detail for a failed transition.
func (a Action) FallbackMessage() string {
	if r, ok := transitionTable[a]; ok {
		return r.fallback
	}
	return "Action failed"
}

// RequiresConfirmation reports whether the action must be interactively
// confirmed before it is dispatched.
func (a Action) RequiresConfirmation() bool {
	r, ok := transitionTable[a]
	return ok && r.confirm
}
