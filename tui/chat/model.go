// Package chat is the terminal rendition of a conversation: a scrollback
// of the message thread over an input line, with optimistic sends applied
// the moment they are staged and resolved when the backend answers.
package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	mchat "github.com/miralabs/mira/chat"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui/components/help"
)

// sendResultMsg carries the lifecycle event produced by a finished
// delivery attempt.
type sendResultMsg struct {
	ev mchat.Event
}

// retryErrMsg reports a retry that could not start.
type retryErrMsg struct {
	err error
}

// Model is the state of the chat TUI.
type Model struct {
	composer *mchat.Composer
	history  *mchat.History // nil disables persistence
	library  *media.Library // nil disables local attachments

	conversationID string
	thread         mchat.Thread

	input      textinput.Model
	attachMode bool // input temporarily collects an attachment path
	draft      string // body stashed while attachMode is on

	vp     viewport.Model
	keys   KeyMap
	help   help.Model
	width  int
	height int
	status string

	timeout     time.Duration
	resendOnUp  bool
	log         *logrus.Entry
}

func newModel(composer *mchat.Composer, history *mchat.History, library *media.Library, conversationID string, thread mchat.Thread, timeout time.Duration, resendOnUp bool) Model {
	input := textinput.New()
	input.Placeholder = "Message…"
	input.CharLimit = 0
	input.Focus()

	return Model{
		composer:       composer,
		history:        history,
		library:        library,
		conversationID: conversationID,
		thread:         thread,
		input:          input,
		vp:             viewport.New(0, 0),
		keys:           DefaultKeyMap,
		help:           help.New(DefaultKeyMap),
		timeout:        timeout,
		resendOnUp:     resendOnUp,
		log:            logging.NewLogger("mira-chat"),
	}
}

// Init optionally kicks off a retry of the oldest interrupted message.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.resendOnUp {
		if msg, ok := m.oldestFailed(); ok {
			cmds = append(cmds, m.retryCmd(msg))
		}
	}
	return tea.Batch(cmds...)
}

// oldestFailed returns the earliest failed message, if any.
func (m Model) oldestFailed() (mchat.Message, bool) {
	for _, msg := range m.thread.Messages {
		if msg.Status == mchat.StatusFailed {
			return msg, true
		}
	}
	return mchat.Message{}, false
}

// newestFailed returns the most recent failed message, if any.
func (m Model) newestFailed() (mchat.Message, bool) {
	for i := len(m.thread.Messages) - 1; i >= 0; i-- {
		if m.thread.Messages[i].Status == mchat.StatusFailed {
			return m.thread.Messages[i], true
		}
	}
	return mchat.Message{}, false
}

// deliverCmd runs a staged message's backend call off the UI loop.
func (m Model) deliverCmd(msg mchat.Message) tea.Cmd {
	composer, timeout := m.composer, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ev := composer.Deliver(ctx, msg)
		composer.Reset()
		return sendResultMsg{ev: ev}
	}
}

// retryCmd re-delivers a failed message under its original key.
func (m Model) retryCmd(msg mchat.Message) tea.Cmd {
	composer, timeout := m.composer, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ev, err := composer.Retry(ctx, msg)
		composer.Reset()
		if err != nil {
			return retryErrMsg{err: err}
		}
		return sendResultMsg{ev: ev}
	}
}

// persist writes the thread's current version of a message to history.
func (m *Model) persist(key string) {
	if m.history == nil {
		return
	}
	msg, ok := m.thread.Find(key)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := m.history.SaveMessage(ctx, msg); err != nil {
		m.log.WithError(err).WithField("key", key).Warn("Persisting message failed")
	}
}
