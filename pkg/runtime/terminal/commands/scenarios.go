package commands

import (
	"fmt"
	"io"

	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/spf13/cobra"
)

type ScenariosCmd struct {
	inputPath string
	out       io.Writer
}

func NewScenariosCmd(out io.Writer) *cobra.Command {
	sc := &ScenariosCmd{out: out}
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List scenario series in an input file",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.inputPath, "input", config.DefaultInputPath, "Path to the scenario CSV")

	return cmd
}

func (sc *ScenariosCmd) run(_ *cobra.Command, _ []string) error {
	ds, err := dataset.NewStore().Load(sc.inputPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(sc.out, "Scenarios in %s (%d samples each):\n", sc.inputPath, ds.Len())
	for i, scenario := range ds.Scenarios {
		fmt.Fprintf(sc.out, "  p%d: %s\n", i+1, scenario.Name)
	}
	return nil
}
