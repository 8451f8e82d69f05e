package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/carbon-atlas/pkg/services/analysis"
	"github.com/de-tools/carbon-atlas/pkg/services/changepoint"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/plot"
	"github.com/de-tools/carbon-atlas/pkg/store/dataset"
	"github.com/de-tools/carbon-atlas/pkg/store/results"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	configPath   string
	inputPath    string
	resultsDir   string
	changepoints int
	window       int
	verbose      bool
	out          io.Writer
}

func NewAnalyzeCmd(out io.Writer) *cobra.Command {
	ac := &AnalyzeCmd{out: out}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Detect and evaluate changepoints in CO2 concentration scenarios",
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.configPath, "config", "", "Path to an optional analysis config file")
	cmd.Flags().StringVar(&ac.inputPath, "input", config.DefaultInputPath, "Path to the scenario CSV")
	cmd.Flags().StringVar(&ac.resultsDir, "results", config.DefaultResultsDir, "Directory for output artifacts")
	cmd.Flags().IntVar(&ac.changepoints, "changepoints", config.DefaultChangepoints, "Changepoints to detect per scenario")
	cmd.Flags().IntVar(&ac.window, "window", config.DefaultEvaluationWindow, "Samples per side for the significance t-test")
	cmd.Flags().BoolVarP(&ac.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	level := zerolog.InfoLevel
	if ac.verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(ac.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("input") {
		cfg.InputPath = ac.inputPath
	}
	if cmd.Flags().Changed("results") {
		cfg.ResultsDir = ac.resultsDir
	}
	if cmd.Flags().Changed("changepoints") {
		cfg.Changepoints = ac.changepoints
	}
	if cmd.Flags().Changed("window") {
		cfg.EvaluationWindow = ac.window
	}

	ds, err := dataset.NewStore().Load(cfg.InputPath)
	if err != nil {
		return err
	}
	logger.Info().Str("input", cfg.InputPath).Int("scenarios", len(ds.Scenarios)).Int("samples", ds.Len()).Msg("dataset loaded")

	resultsStore, err := results.NewStore(cfg.ResultsDir)
	if err != nil {
		return err
	}

	renderer := plot.NewRenderer(cfg.GridColumns)
	if err := renderer.Overview(ds, resultsStore.Path(results.OverviewFigure)); err != nil {
		return fmt.Errorf("failed to render overview figure: %w", err)
	}

	analyzer := analysis.NewAnalyzer(
		changepoint.NewDetector(cfg.DetectionWidth, cfg.Changepoints),
		changepoint.NewEvaluator(cfg.EvaluationWindow),
		ac.out,
	)

	records, err := analyzer.Run(ctx, ds)
	if err != nil {
		return err
	}

	rows := make([]store.EvaluationRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, adapters.MapEvaluationDomainToStore(rec))
	}
	path, err := resultsStore.WriteEvaluations(rows)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Int("records", len(rows)).Msg("evaluation records written")

	allChangepoints, err := analyzer.Detect(ds)
	if err != nil {
		return err
	}
	if err := renderer.ChangepointGrid(ds, allChangepoints, resultsStore.Path(results.GridFigure)); err != nil {
		return fmt.Errorf("failed to render changepoint grid: %w", err)
	}

	summaries := analysis.Summarize(records)
	summaryRows := make([]store.SummaryRow, 0, len(summaries))
	for _, sum := range summaries {
		summaryRows = append(summaryRows, adapters.MapSummaryDomainToStore(sum))
	}
	path, err = resultsStore.WriteSummary(summaryRows)
	if err != nil {
		return err
	}
	logger.Info().Str("path", path).Msg("summary statistics written")

	return export.NewReporter(ac.out).Handle(summaries)
}
