package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/media"
	"github.com/miralabs/mira/tui/theme"
)

// NewPhotosCmd creates the `photos` command.
func NewPhotosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photos",
		Short: "List and import photos from the import directory",
		Long: `Scans the import directory for eligible photos. With --copy each
photo is copied into the permanent media library; copying the same
bytes twice lands on the same library file, so re-running is safe.

With --follow the command keeps watching and handles photos as they
arrive.`,
		RunE: runPhotosE,
	}

	cmd.Flags().BoolP("follow", "f", false, "Keep watching for new photos")
	cmd.Flags().Bool("copy", false, "Copy each photo into the permanent media library")
	cmd.Flags().String("import-dir", "", "Scan this directory instead of the default")

	return cmd
}

func runPhotosE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	importer, err := buildImporter(cmd, cfg)
	if err != nil {
		return handler.Handle(err)
	}
	if importer == nil {
		logger.Info("No import directory configured.")
		return nil
	}

	copyToLibrary, _ := cmd.Flags().GetBool("copy")
	var library *media.Library
	if copyToLibrary {
		library, err = buildLibrary(cfg)
		if err != nil {
			return handler.Handle(err)
		}
		if library == nil {
			return handler.Handle(fmt.Errorf("no media library directory available"))
		}
	}

	scanned, err := importer.Scan()
	if err != nil {
		return handler.Handle(err)
	}

	for _, uri := range scanned {
		if err := handlePhoto(uri, library, opts.JSONOutput); err != nil {
			return handler.Handle(err)
		}
	}
	if len(scanned) == 0 && !opts.JSONOutput {
		fmt.Println(theme.DefaultTheme.Muted.Render("No photos in the import directory."))
	}

	follow, _ := cmd.Flags().GetBool("follow")
	if !follow {
		return nil
	}

	arrivals, err := importer.Watch(cmd.Context())
	if err != nil {
		return handler.Handle(err)
	}
	logger.Debug("Watching import directory")
	for uri := range arrivals {
		if err := handlePhoto(uri, library, opts.JSONOutput); err != nil {
			logger.WithError(err).WithField("photo", uri).Warn("Could not handle imported photo")
		}
	}
	return nil
}

// handlePhoto prints one photo and, when a library is given, copies it
// into permanent storage.
func handlePhoto(uri string, library *media.Library, jsonOutput bool) error {
	permanent := ""
	if library != nil {
		var err error
		permanent, err = library.CopyToPermanent(uri)
		if err != nil {
			return err
		}
	}

	if jsonOutput {
		out := map[string]string{"photo": uri}
		if permanent != "" {
			out["permanent"] = permanent
		}
		data, _ := json.Marshal(out)
		fmt.Println(string(data))
		return nil
	}

	if permanent != "" && permanent != uri {
		fmt.Printf("%s %s %s %s\n", theme.IconPhoto, uri, theme.IconArrow, permanent)
	} else {
		fmt.Printf("%s %s\n", theme.IconPhoto, uri)
	}
	return nil
}
