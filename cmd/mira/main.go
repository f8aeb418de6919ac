package main

import (
	"os"

	"github.com/miralabs/mira/cli"
	"github.com/miralabs/mira/cmd"
	"github.com/miralabs/mira/version"
)

func main() {
	root := cli.NewStandardCommand("mira", "Terminal client for Mira")
	root.Long = `Mira is a terminal client for the Mira dating service.

Run 'mira setup' to build your private profile, then 'mira chat' to
open a conversation. All state lives under the XDG directories; see
'mira paths'.`

	info := version.GetInfo()
	root.Version = info.Version
	cli.SetVersionTemplate(root, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	root.SilenceUsage = true
	root.SilenceErrors = true

	root.AddCommand(
		cmd.NewSetupCmd(),
		cmd.NewChatCmd(),
		cmd.NewPhotosCmd(),
		cmd.NewLogsCmd(),
		cmd.NewConfigLayersCmd(),
		cmd.NewPathsCmd(),
		cmd.NewKeysCmd(),
		cmd.NewVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
