package appointments

import "sync"

// InflightGuard tracks appointments with an outstanding mutating request.
// While an appointment is held, further actions on it are refused, so a
// double-click on the same control never issues a second request.
type InflightGuard struct {
	mu   sync.Mutex
	busy map[string]Action
}

// NewInflightGuard creates an empty guard.
func NewInflightGuard() *InflightGuard {
	return &InflightGuard{busy: make(map[string]Action)}
}

// TryAcquire marks the appointment busy with the given action. It returns
// false when a request for the same appointment is already outstanding.
func (g *InflightGuard) TryAcquire(appointmentID string, action Action) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, held := g.busy[appointmentID]; held {
		return false
	}
	g.busy[appointmentID] = action
	return true
}

// Release clears the busy mark. Releasing an unheld id is a no-op.
func (g *InflightGuard) Release(appointmentID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.busy, appointmentID)
}

// Held reports whether a request for the appointment is outstanding.
func (g *InflightGuard) Held(appointmentID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, held := g.busy[appointmentID]
	return held
}
