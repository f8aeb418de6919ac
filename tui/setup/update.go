package setup

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui/keymap"
	"github.com/miralabs/mira/wizard"
)

// Update handles messages and advances the wizard.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(m.width, m.height)
		m.bio.SetWidth(clamp(m.width-12, 20, 80))
		m.bio.SetHeight(6)
		return m, nil

	case photoImportedMsg:
		m.addUploaded(msg.url)
		return m, m.waitForImport()

	case importClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.Toggle()
			return m, nil
		}
		if m.bioEdit {
			return m.updateBioEdit(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

// updateBioEdit routes keys to the bio textarea while it is focused.
// Escape commits the draft and leaves edit mode.
func (m Model) updateBioEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) {
		m.bio.Blur()
		m.bioEdit = false
		if err := m.store.SetPrivateBio(m.bio.Value()); err != nil {
			m.status = "Could not save your bio: " + err.Error()
			m.log.WithError(err).Error("Persisting bio failed")
		} else {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.bio, cmd = m.bio.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Multi-key sequences (gg) are resolved before single keys. A pending
	// prefix swallows the key; anything else falls through.
	switch result, _ := m.seq.Process(msg, m.keys.Top); result {
	case keymap.SequenceMatch:
		m.seq.Clear()
		m.cursor = 0
		return m, nil
	case keymap.SequencePending:
		return m, nil
	default:
		m.seq.Clear()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.NextStep):
		return m.advance()

	case key.Matches(msg, m.keys.PrevStep), key.Matches(msg, m.keys.Back):
		return m.retreat()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-gridColumns, -1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(gridColumns, 1)

	case key.Matches(msg, m.keys.Left):
		if m.step == wizard.StepPhotos {
			m.moveCursor(-1, 0)
		}

	case key.Matches(msg, m.keys.Right):
		if m.step == wizard.StepPhotos {
			m.moveCursor(1, 0)
		}

	case key.Matches(msg, m.keys.Bottom):
		if count := m.stepItemCount(); count > 0 {
			m.cursor = count - 1
		}

	case key.Matches(msg, m.keys.ToggleBlur):
		if m.step == wizard.StepPhotos {
			snap := m.store.Snapshot()
			if err := m.store.SetBlurMyPhoto(!snap.BlurMyPhoto); err != nil {
				m.status = "Could not save blur preference: " + err.Error()
			}
		}

	case key.Matches(msg, m.keys.Select):
		m.toggleCurrent()

	case key.Matches(msg, m.keys.Edit):
		if m.step == wizard.StepDesire {
			m.enterBioEdit()
			return m, textarea.Blink
		}

	case key.Matches(msg, m.keys.Confirm):
		return m.confirm()
	}

	return m, nil
}

// moveCursor shifts the cursor by gridDelta on the photo grid and by
// listDelta on list steps, clamped to the step's item count.
func (m *Model) moveCursor(gridDelta, listDelta int) {
	count := m.stepItemCount()
	if count == 0 {
		return
	}
	delta := listDelta
	if m.step == wizard.StepPhotos {
		delta = gridDelta
	}
	m.cursor = clamp(m.cursor+delta, 0, count-1)
}

// toggleCurrent flips the selection state of the item under the cursor.
func (m *Model) toggleCurrent() {
	switch m.step {
	case wizard.StepPhotos:
		grid := m.grid()
		if m.cursor >= len(grid) {
			return
		}
		slot := grid[m.cursor]
		switch slot.Kind {
		case media.SlotUpload:
			m.status = "Drop photos into the import folder to add them here"
		case media.SlotPhoto:
			m.togglePhoto(slot.URL)
		}

	case wizard.StepIntents:
		if m.cursor >= len(IntentCatalog) {
			return
		}
		m.toggleIntent(IntentCatalog[m.cursor].Key)
	}
}

func (m *Model) togglePhoto(url string) {
	snap := m.store.Snapshot()
	urls := make([]string, 0, len(snap.SelectedPhotoURLs)+1)
	removed := false
	for _, u := range snap.SelectedPhotoURLs {
		if u == url {
			removed = true
			continue
		}
		urls = append(urls, u)
	}
	if !removed {
		urls = append(urls, url)
	}

	ids := make([]string, len(urls))
	for i, u := range urls {
		ids[i] = wizard.PhotoID(u)
	}
	if err := m.store.SetSelectedPhotos(ids, urls); err != nil {
		m.status = "Could not save photo selection: " + err.Error()
		m.log.WithError(err).Error("Persisting photo selection failed")
		return
	}
	m.status = ""
}

func (m *Model) toggleIntent(intentKey string) {
	snap := m.store.Snapshot()
	keys := make([]string, 0, len(snap.IntentKeys)+1)
	removed := false
	for _, k := range snap.IntentKeys {
		if k == intentKey {
			removed = true
			continue
		}
		keys = append(keys, k)
	}
	if !removed {
		if len(keys) >= m.th.MaxIntents && m.th.MaxIntents > 0 {
			m.status = "You can pick at most " + pluralCount(m.th.MaxIntents, "intent")
			return
		}
		keys = append(keys, intentKey)
	}
	if err := m.store.SetIntentKeys(keys); err != nil {
		m.status = "Could not save intents: " + err.Error()
		return
	}
	m.status = ""
}

// enterBioEdit focuses the textarea, seeding it with the persisted bio.
func (m *Model) enterBioEdit() {
	snap := m.store.Snapshot()
	m.bio.SetValue(snap.PrivateBio)
	m.bio.Focus()
	m.bio.CursorEnd()
	m.bioEdit = true
	m.status = ""
}

// confirm is the primary action: on gated steps it advances when the gate
// is open; on review it completes setup.
func (m Model) confirm() (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	failed := m.store.FailedURLs()

	if m.step == wizard.StepReview {
		if !wizard.AllComplete(snap.State, failed, m.th) {
			m.status = strings.Join(wizard.MissingRequirements(m.step, snap.State, failed, m.th), ", ")
			return m, nil
		}
		if err := m.store.CompleteSetup(); err != nil {
			m.status = "Could not complete setup: " + err.Error()
			m.log.WithError(err).Error("CompleteSetup failed")
			return m, nil
		}
		m.done = true
		return m, tea.Quit
	}

	if m.step == wizard.StepDesire && snap.PrivateBio == "" && !m.bioEdit {
		m.enterBioEdit()
		return m, textarea.Blink
	}

	return m.advance()
}

// advance moves to the next step if the current gate is open.
func (m Model) advance() (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	failed := m.store.FailedURLs()

	if !wizard.StepComplete(m.step, snap.State, failed, m.th) {
		m.status = strings.Join(wizard.MissingRequirements(m.step, snap.State, failed, m.th), ", ")
		return m, nil
	}

	next := m.step.Next()
	if next == m.step {
		return m, nil
	}
	m.step = next
	m.cursor = 0
	m.status = ""
	if err := m.store.SetCurrentStep(next); err != nil {
		m.log.WithError(err).Warn("Persisting current step failed")
	}
	return m, nil
}

// retreat moves to the previous step. Going back is never gated.
func (m Model) retreat() (tea.Model, tea.Cmd) {
	prev := m.step.Prev()
	if prev == m.step {
		return m, nil
	}
	m.step = prev
	m.cursor = 0
	m.status = ""
	if err := m.store.SetCurrentStep(prev); err != nil {
		m.log.WithError(err).Warn("Persisting current step failed")
	}
	return m, nil
}

// addUploaded records a watcher arrival, deduplicating against both lists.
func (m *Model) addUploaded(url string) {
	if !wizard.ValidPhotoURL(url) {
		return
	}
	for _, u := range m.imported {
		if u == url {
			return
		}
	}
	for _, u := range m.uploaded {
		if u == url {
			return
		}
	}
	m.uploaded = append(m.uploaded, url)
	m.log.WithField("url", url).Debug("Photo arrived from import watcher")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pluralCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
