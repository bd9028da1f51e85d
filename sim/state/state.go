// Package state tracks the session-scoped simulator status derived from
// inbound Status envelopes.
package state

import "sync"

// Status is the derived simulator-connection state. It starts at the
// disconnected, no-error baseline and is only ever changed by merging
// partial updates.
type Status struct {
	LastError          int    `json:"last_error"`
	SimulatorConnected bool   `json:"simulator_connected"`
	SimulatorLoaded    bool   `json:"simulator_loaded"`
	SimulatorName      string `json:"simulator_name,omitempty"`
}

// Update is a partial status update. Nil fields leave the current value
// untouched; the wire payload may carry any subset of them.
type Update struct {
	LastError          *int    `json:"last_error,omitempty"`
	SimulatorConnected *bool   `json:"simulator_connected,omitempty"`
	SimulatorLoaded    *bool   `json:"simulator_loaded,omitempty"`
	SimulatorName      *string `json:"simulator_name,omitempty"`
}

// Tracker holds one Status instance and applies field-wise merges. It is
// safe for concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	current Status
}

// NewTracker creates a tracker at the disconnected baseline.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Merge applies a partial update field by field and returns the post-merge
// snapshot. Fields absent from the update retain their previous value; an
// empty update is a no-op.
func (t *Tracker) Merge(u Update) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	if u.LastError != nil {
		t.current.LastError = *u.LastError
	}
	if u.SimulatorConnected != nil {
		t.current.SimulatorConnected = *u.SimulatorConnected
	}
	if u.SimulatorLoaded != nil {
		t.current.SimulatorLoaded = *u.SimulatorLoaded
	}
	if u.SimulatorName != nil {
		t.current.SimulatorName = *u.SimulatorName
	}
	return t.current
}

// Snapshot returns an independent copy of the current status.
func (t *Tracker) Snapshot() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// IsConnected reports whether the simulator has explicitly reported itself
// connected. Absent or never-merged state counts as not connected.
func (t *Tracker) IsConnected() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current.SimulatorConnected
}

// Reset returns the tracker to the disconnected baseline. The bridge calls
// this only on teardown, not on peer disconnect; consumers wanting
// reset-on-disconnect can call it from their disconnect callback.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.current = Status{}
}
