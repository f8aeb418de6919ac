// Package setup is the terminal rendition of the private-profile wizard:
// four gated steps (photos, intents, desire, review) over the persisted
// wizard store, entered wherever the resumability guard decides.
package setup

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui/components/help"
	"github.com/miralabs/mira/tui/keymap"
	"github.com/miralabs/mira/wizard"
)

// Intent is one selectable relationship intent.
type Intent struct {
	Key   string
	Label string
}

// IntentCatalog is the fixed set of intents offered on the intents step,
// in display order.
var IntentCatalog = []Intent{
	{Key: "long_term", Label: "A long-term partner"},
	{Key: "short_term", Label: "Something short and sweet"},
	{Key: "open_to_either", Label: "Open to either"},
	{Key: "new_friends", Label: "New friends"},
	{Key: "figuring_out", Label: "Still figuring it out"},
}

const gridColumns = 3

// photoImportedMsg carries a photo URI delivered by the import watcher.
type photoImportedMsg struct {
	url string
}

// importClosedMsg signals the watcher channel has closed.
type importClosedMsg struct{}

// Model is the state of the setup wizard TUI.
type Model struct {
	store *wizard.Store
	th    wizard.Thresholds

	// imported holds the phase-1 candidates, uploaded the photos that
	// arrived through the watcher this session. The grid merges both.
	imported []string
	uploaded []string
	capacity int

	imports <-chan string

	step      wizard.Step
	cursor    int
	bio       textarea.Model
	bioEdit   bool
	completed bool // launched with setup already complete

	keys   KeyMap
	seq    *keymap.SequenceState
	help   help.Model
	width  int
	height int
	status string
	done   bool

	log *logrus.Entry
}

func newModel(store *wizard.Store, th wizard.Thresholds, keys KeyMap, imported []string, capacity int, imports <-chan string) Model {
	snap := store.Snapshot()

	bio := textarea.New()
	bio.Placeholder = "What are you hoping to find here?"
	bio.CharLimit = 0
	bio.SetValue(snap.PrivateBio)

	guard := wizard.NewGuard(th)
	decision, resumeAt, _ := guard.Check(snap, store.FailedURLs())

	m := Model{
		store:    store,
		th:       th,
		imported: imported,
		capacity: capacity,
		imports:  imports,
		step:     resumeAt,
		bio:      bio,
		keys:     keys,
		seq:      keymap.NewSequenceState(),
		help:     help.New(keys),
		log:      logging.NewLogger("mira-setup"),
	}

	if decision == wizard.DecisionSkipToComplete {
		m.step = wizard.StepReview
		m.completed = true
	}
	m.log.WithFields(logrus.Fields{
		"decision": decision.String(),
		"step":     m.step.String(),
	}).Debug("Wizard entry decided")

	return m
}

// Init starts the import watcher pump when a watcher is wired.
func (m Model) Init() tea.Cmd {
	return m.waitForImport()
}

// waitForImport blocks on the watcher channel and converts arrivals into
// messages. Re-issued after every delivery.
func (m Model) waitForImport() tea.Cmd {
	if m.imports == nil {
		return nil
	}
	ch := m.imports
	return func() tea.Msg {
		url, ok := <-ch
		if !ok {
			return importClosedMsg{}
		}
		return photoImportedMsg{url: url}
	}
}

// grid assembles the photo grid for the current candidates.
func (m Model) grid() []media.Slot {
	return media.BuildGrid(m.imported, m.uploaded, m.store.FailedURLs(), m.capacity)
}

// selectedSet returns the currently selected photo URLs as a set.
func (m Model) selectedSet() map[string]bool {
	snap := m.store.Snapshot()
	set := make(map[string]bool, len(snap.SelectedPhotoURLs))
	for _, u := range snap.SelectedPhotoURLs {
		set[u] = true
	}
	return set
}

// stepItemCount returns how many cursor positions the current step has.
func (m Model) stepItemCount() int {
	switch m.step {
	case wizard.StepPhotos:
		return len(m.grid())
	case wizard.StepIntents:
		return len(IntentCatalog)
	}
	return 0
}

// Done reports whether the flow finished with setup complete.
func (m Model) Done() bool {
	return m.done
}
