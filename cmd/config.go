package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/config"
	"github.com/miralabs/mira/tui/theme"
)

// NewConfigLayersCmd creates the `config-layers` command, which shows each
// configuration layer separately along with the merged result.
func NewConfigLayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config-layers",
		Short: "Show each configuration layer and the merged result",
		Long: `Shows the global config, the project mira.yml, any override files,
and the final merged configuration the app actually uses.

Useful when a setting does not take effect and you need to see which
layer is winning.`,
		RunE: runConfigLayersE,
	}
	return cmd
}

func runConfigLayersE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	layered, err := config.LoadLayered(cwd)
	if err != nil {
		return handler.Handle(err)
	}

	if opts.JSONOutput {
		return printLayersJSON(layered)
	}

	printLayer("GLOBAL CONFIG", layered.FilePaths[config.SourceGlobal], layered.Global)
	printLayer("PROJECT CONFIG", layered.FilePaths[config.SourceProject], layered.Project)
	for _, override := range layered.Overrides {
		printLayer("OVERRIDE", override.Path, override.Config)
	}
	printLayer("FINAL (MERGED)", "", layered.Final)

	return nil
}

func printLayer(title, path string, cfg *config.Config) {
	fmt.Println(theme.RenderHeader(title))
	if path != "" {
		fmt.Println(theme.DefaultTheme.Muted.Render("  " + path))
	}
	if cfg == nil {
		fmt.Println(theme.DefaultTheme.Muted.Render("  (not present)"))
		fmt.Println()
		return
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Printf("  error rendering layer: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printLayersJSON(layered *config.LayeredConfig) error {
	overrides := make([]map[string]interface{}, 0, len(layered.Overrides))
	for _, o := range layered.Overrides {
		overrides = append(overrides, map[string]interface{}{
			"path":   o.Path,
			"config": o.Config,
		})
	}
	out := map[string]interface{}{
		"global":       layered.Global,
		"global_path":  layered.FilePaths[config.SourceGlobal],
		"project":      layered.Project,
		"project_path": layered.FilePaths[config.SourceProject],
		"overrides":    overrides,
		"final":        layered.Final,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
