package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pastamsm.mleku.dev/cmd/pastamsm/command/bench"
	"pastamsm.mleku.dev/cmd/pastamsm/command/run"
	"pastamsm.mleku.dev/cmd/pastamsm/command/version"
)

type RootCommand struct {
	baseCmd *cobra.Command
}

func NewRootCommand() *RootCommand {
	rootCommand := &RootCommand{
		baseCmd: &cobra.Command{
			Use:           "pastamsm",
			Short:         "Multi-scalar multiplication over the Pasta curves, on CPU cores or a GPU",
			SilenceUsage:  true,
			SilenceErrors: true,
		},
	}

	rootCommand.registerSubCommands()

	return rootCommand
}

func (rc *RootCommand) registerSubCommands() {
	rc.baseCmd.AddCommand(
		version.GetCommand(),
		run.GetCommand(),
		bench.GetCommand(),
	)
}

func (rc *RootCommand) Execute() {
	if err := rc.baseCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)

		os.Exit(1)
	}
}
