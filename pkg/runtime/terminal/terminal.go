package terminal

import (
	"io"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/commands"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	rootCmd *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Output io.Writer
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd(opts)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd(opts Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carbon",
		Short: "CO2 scenario changepoint analysis tool",
	}

	cmd.AddCommand(commands.NewAnalyzeCmd(opts.Output))
	cmd.AddCommand(commands.NewScenariosCmd(opts.Output))

	return cmd
}
