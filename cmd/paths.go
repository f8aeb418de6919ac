package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/pkg/paths"
	"github.com/miralabs/mira/tui/components/table"
)

// PathsOutput lists every directory Mira reads or writes.
type PathsOutput struct {
	ConfigDir  string `json:"config_dir"`
	DataDir    string `json:"data_dir"`
	StateDir   string `json:"state_dir"`
	CacheDir   string `json:"cache_dir"`
	MediaDir   string `json:"media_dir"`
	ImportDir  string `json:"import_dir"`
	LogDir     string `json:"log_dir"`
	HistoryDB  string `json:"history_db"`
}

// NewPathsCmd creates the `paths` command.
func NewPathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the directories Mira uses",
		Long: `Prints the resolved config, data, state, cache, media, import, and
log locations. All of them honor the XDG environment variables and
MIRA_HOME.`,
		RunE: runPathsE,
	}
}

func runPathsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	out := PathsOutput{
		ConfigDir: paths.ConfigDir(),
		DataDir:   paths.DataDir(),
		StateDir:  paths.StateDir(),
		CacheDir:  paths.CacheDir(),
		MediaDir:  paths.MediaDir(),
		ImportDir: paths.ImportDir(),
		LogDir:    paths.LogDir(),
		HistoryDB: paths.HistoryDBPath(),
	}

	if opts.JSONOutput {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	tbl := table.NewStyledTable().Headers("LOCATION", "PATH")
	rows := []struct{ label, path string }{
		{"Config", out.ConfigDir},
		{"Data", out.DataDir},
		{"State", out.StateDir},
		{"Cache", out.CacheDir},
		{"Media library", out.MediaDir},
		{"Import watch", out.ImportDir},
		{"Logs", out.LogDir},
		{"Chat history", out.HistoryDB},
	}
	for _, row := range rows {
		tbl.Row(row.label, row.path)
	}
	fmt.Println(tbl)
	return nil
}
