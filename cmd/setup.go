package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/pkg/paths"
	setuptui "github.com/miralabs/mira/tui/setup"
	"github.com/miralabs/mira/wizard"
)

// NewSetupCmd creates the `setup` command, the private profile wizard.
func NewSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Run the private profile setup wizard",
		Long: `Walks through photo selection, intents, and the private bio.

Progress persists after every change, so quitting mid-way and running
'mira setup' again resumes at the first incomplete step. A finished
profile opens directly on the review screen.

Photos dropped into the import directory while the wizard is open
appear in the grid immediately.`,
		RunE: runSetupE,
	}

	cmd.Flags().String("import-dir", "", "Watch this directory for incoming photos instead of the default")

	return cmd
}

func runSetupE(cmd *cobra.Command, args []string) error {
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

	importer, err := buildImporter(cmd, cfg)
	if err != nil {
		return handler.Handle(err)
	}

	store := wizard.NewStore()

	logger.Debug("Starting setup wizard")
	completed, err := setuptui.Run(cmd.Context(), setuptui.Options{
		Config:   cfg,
		Store:    store,
		Importer: importer,
	})
	if err != nil {
		return handler.Handle(err)
	}

	if completed {
		fmt.Println("Profile setup complete. Your private profile is ready.")
	} else {
		fmt.Println("Setup saved. Run 'mira setup' again to continue where you left off.")
	}
	return nil
}

// buildImporter resolves the import directory from the flag, the config,
// or the default location, in that order.
func buildImporter(cmd *cobra.Command, cfg *config.Config) (*media.Importer, error) {
	dir, _ := cmd.Flags().GetString("import-dir")
	if dir == "" {
		dir = cfg.Media.ImportDir
	}
	if dir == "" {
		dir = paths.ImportDir()
	}
	if dir == "" {
		return nil, nil
	}
	return media.NewImporter(dir, cfg.Media.Exclude)
}
