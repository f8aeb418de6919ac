package keymap

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSequenceState_Process(t *testing.T) {
	top := key.NewBinding(key.WithKeys("gg"))
	bottom := key.NewBinding(key.WithKeys("G"))

	tests := []struct {
		name     string
		keys     []rune
		expected SequenceResult
		idx      int
	}{
		{
			name:     "single g is pending",
			keys:     []rune{'g'},
			expected: SequencePending,
			idx:      -1,
		},
		{
			name:     "gg is match",
			keys:     []rune{'g', 'g'},
			expected: SequenceMatch,
			idx:      0,
		},
		{
			name:     "G matches the second binding",
			keys:     []rune{'G'},
			expected: SequenceMatch,
			idx:      1,
		},
		{
			name:     "x is none",
			keys:     []rune{'x'},
			expected: SequenceNone,
			idx:      -1,
		},
		{
			name:     "abandoned sequence is none",
			keys:     []rune{'g', 'x'},
			expected: SequenceNone,
			idx:      -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSequenceState()
			var result SequenceResult
			var idx int
			for _, r := range tt.keys {
				result, idx = s.Process(runeKey(r), top, bottom)
			}
			if result != tt.expected || idx != tt.idx {
				t.Errorf("Process(%q)=(%v,%d), want (%v,%d)",
					string(tt.keys), result, idx, tt.expected, tt.idx)
			}
		})
	}
}

func TestSequenceState_ClearRestartsSequence(t *testing.T) {
	top := key.NewBinding(key.WithKeys("gg"))
	s := NewSequenceState()

	if result, _ := s.Process(runeKey('g'), top); result != SequencePending {
		t.Errorf("First g should be pending, got %v", result)
	}
	if !s.IsPending() {
		t.Error("Expected IsPending=true mid-sequence")
	}

	if result, idx := s.Process(runeKey('g'), top); result != SequenceMatch || idx != 0 {
		t.Errorf("Second g should match, got result=%v idx=%d", result, idx)
	}

	s.Clear()
	if s.Buffer() != "" {
		t.Errorf("Expected empty buffer after Clear, got %q", s.Buffer())
	}
	if result, _ := s.Process(runeKey('g'), top); result != SequencePending {
		t.Errorf("After clear, g should be pending again, got %v", result)
	}
}

func TestSequenceState_Timeout(t *testing.T) {
	top := key.NewBinding(key.WithKeys("gg"))
	s := NewSequenceStateWithTimeout(50 * time.Millisecond)

	if result, _ := s.Process(runeKey('g'), top); result != SequencePending {
		t.Fatalf("First g should be pending, got %v", result)
	}

	time.Sleep(100 * time.Millisecond)

	// The stale g is discarded, so this g starts a fresh sequence
	// instead of completing gg.
	if result, _ := s.Process(runeKey('g'), top); result != SequencePending {
		t.Errorf("g after timeout should be pending, got %v", result)
	}
	if s.Buffer() != "g" {
		t.Errorf("Expected buffer='g' after timeout, got %q", s.Buffer())
	}
}

func TestMatches(t *testing.T) {
	binding := key.NewBinding(key.WithKeys("gg", "G"))

	tests := []struct {
		buffer   string
		expected bool
	}{
		{"gg", true},
		{"G", true},
		{"g", false},
		{"ggg", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.buffer, func(t *testing.T) {
			if got := Matches(tt.buffer, binding); got != tt.expected {
				t.Errorf("Matches(%q)=%v, want %v", tt.buffer, got, tt.expected)
			}
		})
	}
}

func TestIsPrefix(t *testing.T) {
	binding := key.NewBinding(key.WithKeys("gg"))

	tests := []struct {
		buffer   string
		expected bool
	}{
		{"g", true},
		{"gg", false}, // exact match, not prefix
		{"gx", false},
		{"", false},
		{"a", false},
	}

	for _, tt := range tests {
		t.Run(tt.buffer, func(t *testing.T) {
			if got := IsPrefix(tt.buffer, binding); got != tt.expected {
				t.Errorf("IsPrefix(%q)=%v, want %v", tt.buffer, got, tt.expected)
			}
		})
	}
}
