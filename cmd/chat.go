package cmd

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/miralabs/mira/backend"
	"github.com/miralabs/mira/backend/demo"
	"github.com/miralabs/mira/backend/live"
	"github.com/miralabs/mira/chat"
	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/errors"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/pkg/paths"
	chattui "github.com/miralabs/mira/tui/chat"
)

// NewChatCmd creates the `chat` command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [conversation-id]",
		Short: "Open a conversation",
		Long: `Opens the chat view for a conversation. Sends appear in the thread
immediately and are confirmed or marked failed when the backend answers.
Failed sends stay in place until retried or dismissed.

With --demo (or backend.mode: demo) an in-memory backend answers every
send, which is useful for trying the client without a server.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChatE,
	}

	cmd.Flags().Bool("no-history", false, "Do not persist messages to the history database")

	return cmd
}

func runChatE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	if err := paths.EnsureDirs(); err != nil {
		return handler.Handle(err)
	}

	conversationID := "demo"
	if len(args) > 0 {
		conversationID = args[0]
	}

	client, err := buildBackendClient(cmd, cfg)
	if err != nil {
		return handler.Handle(err)
	}
	defer client.Close()

	var history *chat.History
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		historyPath := cfg.Chat.HistoryPath
		if historyPath == "" {
			historyPath = paths.HistoryDBPath()
		}
		history, err = chat.OpenHistory(historyPath)
		if err != nil {
			return handler.Handle(err)
		}
		defer history.Close()
	}

	library, err := buildLibrary(cfg)
	if err != nil {
		return handler.Handle(err)
	}

	logger.WithFields(logrus.Fields{
		"conversation": conversationID,
		"backend":      cfg.Backend.Mode,
	}).Debug("Opening chat")

	err = chattui.Run(cmd.Context(), chattui.Options{
		Config:         cfg,
		Client:         client,
		ConversationID: conversationID,
		History:        history,
		Library:        library,
	})
	if err != nil {
		return handler.Handle(err)
	}
	return nil
}

// buildBackendClient picks the backend from config. Demo mode needs no
// network; live mode dials the websocket endpoint up front so a bad URL
// fails before the TUI starts.
func buildBackendClient(cmd *cobra.Command, cfg *config.Config) (backend.Client, error) {
	if cfg.Backend.Mode == "demo" {
		return demo.New(), nil
	}

	if cfg.Backend.URL == "" {
		return nil, errors.New(errors.ErrCodeBackendUnavailable, "backend.url is not set for live mode")
	}

	timeout := time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	return live.Dial(cmd.Context(), cfg.Backend.URL, timeout)
}

// buildLibrary opens the permanent media library used for local
// attachments.
func buildLibrary(cfg *config.Config) (*media.Library, error) {
	dir := cfg.Media.MediaDir
	if dir == "" {
		dir = paths.MediaDir()
	}
	if dir == "" {
		return nil, nil
	}
	return media.NewLibrary(dir)
}
