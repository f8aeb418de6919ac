package chat

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miralabs/mira/backend/demo"
	mchat "github.com/miralabs/mira/chat"
)

func newTestModel(t *testing.T) (Model, *demo.Client) {
	t.Helper()
	client := demo.New()
	composer := mchat.NewComposer("conv_1", client)
	m := newModel(composer, nil, nil, "conv_1", mchat.Thread{}, 5*time.Second, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return next.(Model), client
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func TestSendAppliesOptimisticEntryThenConfirms(t *testing.T) {
	m, client := newTestModel(t)
	m = typeText(t, m, "hey there")

	// Stage without running the delivery command: entry is Pending
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.NotNil(t, cmd)
	require.Len(t, m.thread.Messages, 1)
	assert.Equal(t, mchat.StatusPending, m.thread.Messages[0].Status)
	assert.Equal(t, "hey there", m.thread.Messages[0].Body)
	assert.Empty(t, m.input.Value())

	// Run delivery and apply the result: entry confirms in place
	next, _ = m.Update(cmd())
	m = next.(Model)
	require.Len(t, m.thread.Messages, 1)
	assert.Equal(t, mchat.StatusConfirmed, m.thread.Messages[0].Status)
	assert.NotEmpty(t, m.thread.Messages[0].ServerID)
	assert.Len(t, client.Sent(), 1)
}

func TestRejectedSendBecomesRetriable(t *testing.T) {
	m, client := newTestModel(t)
	client.FailNextSend("moderation hold")

	m = typeText(t, m, "first try")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)

	require.Len(t, m.thread.Messages, 1)
	failedKey := m.thread.Messages[0].Key
	assert.Equal(t, mchat.StatusFailed, m.thread.Messages[0].Status)
	assert.Equal(t, "moderation hold", m.thread.Messages[0].FailReason)
	assert.Contains(t, m.status, "moderation hold")

	// Retry reuses the key; the demo backend replays the recorded
	// rejection rather than accepting a duplicate
	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(Model)

	require.Len(t, m.thread.Messages, 1)
	assert.Equal(t, failedKey, m.thread.Messages[0].Key)
	assert.Equal(t, mchat.StatusFailed, m.thread.Messages[0].Status)
	assert.Empty(t, client.Sent())
}

func TestDismissRemovesFailedMessage(t *testing.T) {
	m, client := newTestModel(t)
	client.FailNextSend("spam")

	m = typeText(t, m, "zzz")
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	next, _ = m.Update(cmd())
	m = next.(Model)
	require.Equal(t, mchat.StatusFailed, m.thread.Messages[0].Status)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	m = next.(Model)
	assert.Empty(t, m.thread.Messages)
}

func TestEmptyDraftIsNotSent(t *testing.T) {
	m, _ := newTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Empty(t, m.thread.Messages)
	assert.NotEmpty(t, m.status)
}

func TestAttachModeStashesDraft(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "look at this")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlA})
	m = next.(Model)
	assert.True(t, m.attachMode)
	assert.Empty(t, m.input.Value())

	m = typeText(t, m, "https://cdn.example.com/a.jpg")
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)

	assert.False(t, m.attachMode)
	assert.Equal(t, "look at this", m.input.Value())
	a := m.composer.Attachment()
	require.NotNil(t, a)
	assert.Equal(t, "https://cdn.example.com/a.jpg", a.URI)

	// ctrl+x clears it again
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	m = next.(Model)
	assert.Nil(t, m.composer.Attachment())
}

func TestRetryWithNothingFailed(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(Model)
	assert.Nil(t, cmd)
	assert.Equal(t, "Nothing to retry", m.status)
}
