package chat

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	mchat "github.com/miralabs/mira/chat"
	"github.com/miralabs/mira/media"
)

// Update handles messages and drives the send lifecycle.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetSize(m.width, m.height)
		m.input.Width = m.width - 8
		m.vp.Width = m.width - 4
		m.vp.Height = m.height - 8
		m.syncViewport()
		return m, nil

	case sendResultMsg:
		m.thread = m.thread.Apply(msg.ev)
		switch ev := msg.ev.(type) {
		case mchat.SendConfirmed:
			m.persist(ev.Key)
			m.status = ""
		case mchat.SendFailed:
			m.persist(ev.Key)
			m.status = "Send failed: " + ev.Reason
		}
		m.syncViewport()
		return m, nil

	case retryErrMsg:
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}
		if m.attachMode {
			return m.updateAttachMode(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		return m.send()

	case key.Matches(msg, m.keys.Attach):
		m.enterAttachMode()
		return m, nil

	case key.Matches(msg, m.keys.ClearAttach):
		m.composer.ClearAttachment()
		m.status = ""
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		failed, ok := m.newestFailed()
		if !ok {
			m.status = "Nothing to retry"
			return m, nil
		}
		m.status = "Retrying…"
		return m, m.retryCmd(failed)

	case key.Matches(msg, m.keys.Dismiss):
		failed, ok := m.newestFailed()
		if !ok {
			return m, nil
		}
		m.thread = m.thread.Apply(mchat.Dismissed{Key: failed.Key})
		m.deleteFromHistory(failed.Key)
		m.status = ""
		m.syncViewport()
		return m, nil

	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.composer.SetBody(m.input.Value())
	return m, cmd
}

// send stages the draft, applies it optimistically, and starts delivery.
func (m Model) send() (tea.Model, tea.Cmd) {
	staged, err := m.composer.Stage()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}

	m.input.SetValue("")
	m.thread = m.thread.Apply(mchat.SendStarted{Message: staged})
	m.persist(staged.Key)
	m.status = ""
	m.syncViewport()
	m.vp.GotoBottom()

	return m, m.deliverCmd(staged)
}

// enterAttachMode repurposes the input line to collect a file path,
// stashing the message draft until the attachment is resolved.
func (m *Model) enterAttachMode() {
	m.draft = m.input.Value()
	m.input.SetValue("")
	m.input.Placeholder = "Path to a photo, audio or video file…"
	m.attachMode = true
	m.status = ""
}

func (m *Model) leaveAttachMode() {
	m.input.SetValue(m.draft)
	m.input.Placeholder = "Message…"
	m.draft = ""
	m.attachMode = false
	m.composer.SetBody(m.input.Value())
}

func (m Model) updateAttachMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.leaveAttachMode()
		return m, nil

	case key.Matches(msg, m.keys.Send):
		path := strings.TrimSpace(m.input.Value())
		m.leaveAttachMode()
		if path == "" {
			return m, nil
		}
		if err := m.attachFile(path); err != nil {
			m.status = "Attachment failed: " + err.Error()
		} else {
			m.status = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// attachFile copies a local file into the permanent media library and
// attaches the result to the draft. Remote URLs pass through unchanged.
func (m *Model) attachFile(path string) error {
	uri := path
	if m.library != nil {
		permanent, err := m.library.CopyToPermanent(path)
		if err != nil {
			return err
		}
		uri = permanent
	}
	return m.composer.Attach(media.Attachment{
		Kind: attachmentKind(path),
		URI:  uri,
	})
}

// attachmentKind infers the media kind from the file extension. Unknown
// extensions are treated as photos.
func attachmentKind(path string) media.Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".m4a", ".ogg", ".wav":
		return media.KindAudio
	case ".mp4", ".mov", ".webm":
		return media.KindVideo
	default:
		return media.KindPhoto
	}
}

func (m *Model) deleteFromHistory(key string) {
	if m.history == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.history.DeleteMessage(ctx, key); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("Deleting dismissed message failed")
	}
}
