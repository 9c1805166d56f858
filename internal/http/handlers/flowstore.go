package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightpaws/frontdesk/internal/booking"
)

// FlowStore keeps one booking wizard per anonymous widget visitor, keyed by
// an opaque id handed to the browser. Flows idle longer than the TTL are
// dropped on the next sweep.
type FlowStore struct {
	mu      sync.Mutex
	flows   map[string]*flowEntry
	factory func() *booking.Flow
	ttl     time.Duration
	now     func() time.Time
}

type flowEntry struct {
	flow     *booking.Flow
	lastSeen time.Time
}

// NewFlowStore creates a store that builds fresh wizards with factory.
func NewFlowStore(factory func() *booking.Flow, ttl time.Duration) *FlowStore {
	if factory == nil {
		panic("handlers: flow factory required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &FlowStore{
		flows:   make(map[string]*flowEntry),
		factory: factory,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Create starts a new wizard and returns its id.
func (s *FlowStore) Create() (string, *booking.Flow) {
	id := uuid.NewString()
	flow := s.factory()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepLocked()
	s.flows[id] = &flowEntry{flow: flow, lastSeen: s.now()}
	return id, flow
}

// Get resolves a wizard id, refreshing its idle timer.
func (s *FlowStore) Get(id string) (*booking.Flow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.flows[id]
	if !ok {
		return nil, false
	}
	if s.now().Sub(entry.lastSeen) > s.ttl {
		delete(s.flows, id)
		return nil, false
	}
	entry.lastSeen = s.now()
	return entry.flow, true
}

func (s *FlowStore) sweepLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, entry := range s.flows {
		if entry.lastSeen.Before(cutoff) {
			delete(s.flows, id)
		}
	}
}
