package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/miralabs/mira/backend"
	mchat "github.com/miralabs/mira/chat"
	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/logging"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui"
)

// Options wires the chat TUI's collaborators. Client and ConversationID
// are required; History and Library are optional.
type Options struct {
	Config         *config.Config
	Client         backend.Client
	ConversationID string
	History        *mchat.History
	Library        *media.Library
}

// Run loads the conversation, marks sends interrupted by a previous run
// as failed so they become retriable, and runs the chat TUI.
func Run(ctx context.Context, opts Options) error {
	log := logging.NewLogger("mira-chat")

	var thread mchat.Thread
	if opts.History != nil {
		msgs, err := opts.History.Conversation(ctx, opts.ConversationID)
		if err != nil {
			return err
		}
		thread.Messages = msgs
	}

	// A message still Pending from a previous process never got its
	// answer; surface it as failed so the user can retry or dismiss it.
	for i, msg := range thread.Messages {
		if msg.Status != mchat.StatusPending {
			continue
		}
		thread.Messages[i].Status = mchat.StatusFailed
		thread.Messages[i].FailReason = "interrupted"
		if opts.History != nil {
			if err := opts.History.SaveMessage(ctx, thread.Messages[i]); err != nil {
				log.WithError(err).WithField("key", msg.Key).Warn("Marking interrupted send failed")
			}
		}
	}

	timeout := 15 * time.Second
	resend := false
	if opts.Config != nil {
		if opts.Config.Backend.TimeoutSeconds > 0 {
			timeout = time.Duration(opts.Config.Backend.TimeoutSeconds) * time.Second
		}
		resend = opts.Config.Chat.ResendPendingOnStart
	}

	composer := mchat.NewComposer(opts.ConversationID, opts.Client)

	tui.InitializeTUI()
	model := newModel(composer, opts.History, opts.Library, opts.ConversationID, thread, timeout, resend)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
