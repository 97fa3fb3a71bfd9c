// Package user runs simulated browsing sessions: each virtual user picks a
// site, follows links to a bounded depth with human-like delays, and starts
// over on a fresh site at a regular interval.
package user

import "sync"

// State describes what a virtual user is doing right now
type State string

const (
	StateStarting State = "starting"
	StateBrowsing State = "browsing"
	StateWaiting  State = "waiting"
	StatePaused   State = "paused"
)

// Status is the observable position of one virtual user, updated by the
// user's goroutine and read by the status reporter.
type Status struct {
	mu         sync.Mutex
	userID     int
	currentURL string
	depth      int
	state      State
}

// NewStatus creates a status cell in the starting state
func NewStatus(userID int) *Status {
	return &Status{userID: userID, state: StateStarting}
}

// SetPosition records the page and depth the user is currently on
func (s *Status) SetPosition(url string, depth int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentURL = url
	s.depth = depth
	s.state = StateBrowsing
}

// SetState updates only the activity state
func (s *Status) SetState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// StatusSnapshot is a point-in-time copy of a user's status
type StatusSnapshot struct {
	UserID     int
	CurrentURL string
	Depth      int
	State      State
}

// Snapshot returns a consistent copy of the current status
func (s *Status) Snapshot() StatusSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusSnapshot{
		UserID:     s.userID,
		CurrentURL: s.currentURL,
		Depth:      s.depth,
		State:      s.state,
	}
}
