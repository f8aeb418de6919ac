package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miralabs/mira/cli"
	chattui "github.com/miralabs/mira/tui/chat"
	"github.com/miralabs/mira/tui/keymap"
	setuptui "github.com/miralabs/mira/tui/setup"
	"github.com/miralabs/mira/tui/theme"
)

// NewKeysCmd creates the `keys` command, which lists the keybindings of
// every TUI so users can see what to override in mira.yml.
func NewKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys [tui]",
		Short: "Show the keybindings of the Mira TUIs",
		Long: `Lists every keybinding, grouped the way the in-app help screens
group them. The config keys shown can be used under
tui.keybindings.overrides in mira.yml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runKeysE,
	}
	return cmd
}

func runKeysE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)

	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		// Defaults still describe the bindings usefully.
		cfg = nil
	}

	infos := []keymap.TUIInfo{
		keymap.MakeTUIInfo("setup", "mira", "Private profile setup wizard", setuptui.NewKeyMap(cfg)),
		keymap.MakeTUIInfo("chat", "mira", "Conversation view and composer", chattui.DefaultKeyMap),
	}

	if len(args) == 1 {
		filtered := infos[:0]
		for _, info := range infos {
			if info.Name == args[0] {
				filtered = append(filtered, info)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("unknown TUI %q (have: setup, chat)", args[0])
		}
		infos = filtered
	}

	if opts.JSONOutput {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	for _, info := range infos {
		fmt.Println(theme.RenderHeader(strings.ToUpper(info.Name) + " · " + info.Description))
		for _, section := range info.Sections {
			fmt.Println(theme.DefaultTheme.Bold.Render("  " + section.Name))
			for _, b := range section.Bindings {
				if !b.Enabled {
					continue
				}
				fmt.Printf("    %-24s %s\n",
					strings.Join(b.Keys, ", "),
					theme.DefaultTheme.Muted.Render(b.Description),
				)
			}
		}
		fmt.Println()
	}
	return nil
}
