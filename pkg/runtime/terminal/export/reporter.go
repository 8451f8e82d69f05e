package export

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/carbon-atlas/pkg/adapters"
	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/models/store"
)

type TableConfig struct {
	SeriesWidth int
	ValueWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		SeriesWidth: 8,
		ValueWidth:  22,
	}
}

// Reporter prints the final summary statistics table.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (r *Reporter) Handle(summaries []domain.ScenarioSummary) error {
	funcMap := template.FuncMap{
		"formatRow": func(series string, values ...string) string {
			cells := make([]string, 0, len(values)+1)
			cells = append(cells, fmt.Sprintf(" %-*s ", r.config.SeriesWidth, series))
			for _, v := range values {
				cells = append(cells, fmt.Sprintf(" %*s ", r.config.ValueWidth, v))
			}
			return "|" + strings.Join(cells, "|") + "|"
		},
		"separator": func() string {
			parts := make([]string, 0, len(store.SummaryColumns))
			parts = append(parts, strings.Repeat("-", r.config.SeriesWidth+2))
			for i := 1; i < len(store.SummaryColumns); i++ {
				parts = append(parts, strings.Repeat("-", r.config.ValueWidth+2))
			}
			return "+" + strings.Join(parts, "+") + "+"
		},
	}

	tmpl := `
Summary Statistics:
{{separator}}
{{formatRow "Series" "Time_mean" "Time_std" "CO2_Concentration_mean" "CO2_Concentration_std" "t-statistic_mean" "t-statistic_std" "p-value_mean" "p-value_std"}}
{{separator}}
{{range .Rows}}{{formatRow .Series .TimeMean .TimeStd .ConcentrationMean .ConcentrationStd .StatisticMean .StatisticStd .PValueMean .PValueStd}}
{{end}}{{separator}}
`

	type row struct {
		Series            string
		TimeMean          string
		TimeStd           string
		ConcentrationMean string
		ConcentrationStd  string
		StatisticMean     string
		StatisticStd      string
		PValueMean        string
		PValueStd         string
	}
	rows := make([]row, 0, len(summaries))
	for _, sum := range summaries {
		sr := adapters.MapSummaryDomainToStore(sum)
		rows = append(rows, row{
			Series:            sr.Series,
			TimeMean:          formatValue(sr.TimeMean),
			TimeStd:           formatValue(sr.TimeStd),
			ConcentrationMean: formatValue(sr.ConcentrationMean),
			ConcentrationStd:  formatValue(sr.ConcentrationStd),
			StatisticMean:     formatValue(sr.StatisticMean),
			StatisticStd:      formatValue(sr.StatisticStd),
			PValueMean:        formatValue(sr.PValueMean),
			PValueStd:         formatValue(sr.PValueStd),
		})
	}

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(r.writer, struct{ Rows []row }{Rows: rows})
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4f", v)
}
