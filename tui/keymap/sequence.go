package keymap

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// SequenceState buffers keystrokes so multi-key bindings like gg can be
// recognized. The buffer clears itself when keys arrive too far apart.
type SequenceState struct {
	buffer     string
	lastUpdate time.Time
	timeout    time.Duration
}

// NewSequenceState creates a sequence tracker with a 1 second timeout.
func NewSequenceState() *SequenceState {
	return NewSequenceStateWithTimeout(time.Second)
}

// NewSequenceStateWithTimeout creates a sequence tracker with a custom timeout.
func NewSequenceStateWithTimeout(timeout time.Duration) *SequenceState {
	return &SequenceState{timeout: timeout}
}

// Clear resets the buffer. Call after acting on a match.
func (s *SequenceState) Clear() {
	s.buffer = ""
}

// Buffer returns the current buffer contents.
func (s *SequenceState) Buffer() string {
	return s.buffer
}

// IsPending reports whether a sequence is in progress.
func (s *SequenceState) IsPending() bool {
	return len(s.buffer) > 0
}

func (s *SequenceState) push(msg tea.KeyMsg) string {
	if s.timeout > 0 && time.Since(s.lastUpdate) > s.timeout {
		s.buffer = ""
	}
	s.lastUpdate = time.Now()
	s.buffer += msg.String()
	return s.buffer
}

// Matches reports whether the buffer exactly equals one of the binding's keys.
func Matches(buffer string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == buffer {
			return true
		}
	}
	return false
}

// IsPrefix reports whether the buffer is a proper prefix of one of the
// binding's keys, meaning more input could still complete it.
func IsPrefix(buffer string, binding key.Binding) bool {
	if buffer == "" {
		return false
	}
	for _, k := range binding.Keys() {
		if len(buffer) < len(k) && k[:len(buffer)] == buffer {
			return true
		}
	}
	return false
}

// SequenceResult is the outcome of feeding one key into the tracker.
type SequenceResult int

const (
	// SequenceNone means the buffer matches nothing and cannot grow into
	// a match. The caller should Clear and dispatch the key normally.
	SequenceNone SequenceResult = iota
	// SequencePending means the buffer is a prefix of some binding. The
	// caller should swallow the key and wait.
	SequencePending
	// SequenceMatch means a binding completed. The second return value
	// is its index.
	SequenceMatch
)

// Process appends the key to the buffer and checks it against the given
// bindings. Exact matches win over prefixes.
//
//	switch result, idx := seq.Process(msg, m.keys.Top); result {
//	case keymap.SequenceMatch:
//		seq.Clear()
//		// act on bindings[idx]
//	case keymap.SequencePending:
//		// swallow, wait for more input
//	default:
//		seq.Clear()
//		// dispatch msg as a single key
//	}
func (s *SequenceState) Process(msg tea.KeyMsg, bindings ...key.Binding) (SequenceResult, int) {
	buffer := s.push(msg)

	for i, binding := range bindings {
		if Matches(buffer, binding) {
			return SequenceMatch, i
		}
	}
	for _, binding := range bindings {
		if IsPrefix(buffer, binding) {
			return SequencePending, -1
		}
	}
	return SequenceNone, -1
}
