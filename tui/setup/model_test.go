package setup

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/testutil"
	"github.com/miralabs/mira/wizard"
)

func newTestModel(t *testing.T, imported []string) Model {
	t.Helper()
	testutil.TempHome(t)
	store := wizard.NewStore()
	require.NoError(t, store.Hydrate())
	m := newModel(store, wizard.DefaultThresholds(), NewKeyMap(nil), imported, 9, nil)
	m.width = 100
	m.height = 40
	return m
}

func pressKey(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestFreshStoreStartsOnPhotos(t *testing.T) {
	m := newTestModel(t, []string{"file:///pics/a.jpg"})
	assert.Equal(t, wizard.StepPhotos, m.step)
	assert.False(t, m.completed)
}

func TestCompleteStoreSkipsToReview(t *testing.T) {
	testutil.TempHome(t)
	store := wizard.NewStore()
	require.NoError(t, store.Hydrate())
	require.NoError(t, store.CompleteSetup())

	m := newModel(store, wizard.DefaultThresholds(), NewKeyMap(nil), nil, 9, nil)
	assert.Equal(t, wizard.StepReview, m.step)
	assert.True(t, m.completed)
}

func TestTogglePhotoPersistsSelection(t *testing.T) {
	m := newTestModel(t, []string{"file:///pics/a.jpg", "file:///pics/b.jpg"})

	m = pressKey(t, m, "space") // select slot 0

	snap := m.store.Snapshot()
	require.Equal(t, []string{"file:///pics/a.jpg"}, snap.SelectedPhotoURLs)
	assert.Equal(t, []string{wizard.PhotoID("file:///pics/a.jpg")}, snap.SelectedPhotoIDs)

	m = pressKey(t, m, "space") // deselect
	assert.Empty(t, m.store.Snapshot().SelectedPhotoURLs)
}

func TestAdvanceBlockedUntilGateOpens(t *testing.T) {
	m := newTestModel(t, []string{"file:///pics/a.jpg", "file:///pics/b.jpg"})

	m = pressKey(t, m, "enter")
	assert.Equal(t, wizard.StepPhotos, m.step)
	assert.Contains(t, m.status, "photo")

	// Select both photos, gate opens
	m = pressKey(t, m, "space", "right", "space", "enter")
	assert.Equal(t, wizard.StepIntents, m.step)
}

func TestIntentLimitEnforced(t *testing.T) {
	m := newTestModel(t, nil)
	m.step = wizard.StepIntents

	// Pick the first three intents
	m = pressKey(t, m, "space", "j", "space", "j", "space")
	assert.Len(t, m.store.Snapshot().IntentKeys, 3)

	// A fourth is rejected with a hint
	m = pressKey(t, m, "j", "space")
	assert.Len(t, m.store.Snapshot().IntentKeys, 3)
	assert.Contains(t, m.status, "at most")
}

func TestSequenceJumpsAcrossList(t *testing.T) {
	m := newTestModel(t, nil)
	m.step = wizard.StepIntents

	// G jumps to the last intent
	m = pressKey(t, m, "G")
	assert.Equal(t, len(IntentCatalog)-1, m.cursor)

	// A lone g is held back as a possible sequence start
	m = pressKey(t, m, "g")
	assert.Equal(t, len(IntentCatalog)-1, m.cursor)

	// The second g completes gg and jumps to the top
	m = pressKey(t, m, "g")
	assert.Equal(t, 0, m.cursor)

	// g followed by an unrelated key abandons the sequence and the
	// second key still dispatches normally
	m = pressKey(t, m, "g", "j")
	assert.Equal(t, 1, m.cursor)
}

func TestBioEditCommitsOnEscape(t *testing.T) {
	m := newTestModel(t, nil)
	m.step = wizard.StepDesire
	m, _ = applySize(m, 100, 40)

	m = pressKey(t, m, "e")
	assert.True(t, m.bioEdit)

	bio := strings.Repeat("looking for something real ", 2)
	for _, r := range bio {
		m = pressKey(t, m, string(r))
	}
	m = pressKey(t, m, "esc")

	assert.False(t, m.bioEdit)
	assert.Equal(t, bio, m.store.Snapshot().PrivateBio)
}

func TestReviewConfirmCompletesSetup(t *testing.T) {
	m := newTestModel(t, nil)
	st := m.store
	require.NoError(t, st.SetSelectedPhotos(
		[]string{"a", "b"}, []string{"http://a.jpg", "http://b.jpg"}))
	require.NoError(t, st.SetIntentKeys([]string{"long_term"}))
	require.NoError(t, st.SetPrivateBio(strings.Repeat("honest and curious ", 3)))

	m.step = wizard.StepReview
	m = pressKey(t, m, "enter")

	assert.True(t, m.done)
	assert.True(t, st.Snapshot().SetupComplete)
}

func TestImportedPhotoJoinsGrid(t *testing.T) {
	m := newTestModel(t, []string{"file:///pics/a.jpg"})

	next, _ := m.Update(photoImportedMsg{url: "file:///pics/new.jpg"})
	m = next.(Model)

	grid := m.grid()
	var urls []string
	for _, slot := range grid {
		if slot.Kind == media.SlotPhoto {
			urls = append(urls, slot.URL)
		}
	}
	assert.Equal(t, []string{"file:///pics/a.jpg", "file:///pics/new.jpg"}, urls)

	// A duplicate delivery changes nothing
	next, _ = m.Update(photoImportedMsg{url: "file:///pics/new.jpg"})
	m = next.(Model)
	assert.Len(t, m.uploaded, 1)
}

func applySize(m Model, w, h int) (Model, tea.Cmd) {
	next, cmd := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model), cmd
}
