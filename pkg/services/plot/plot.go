// Package plot renders the diagnostic figures for an analysis run.
package plot

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	overviewWidth  = 1200
	overviewHeight = 800
	tileWidth      = 400
	tileHeight     = 320
)

// Renderer draws PNG figures for a dataset.
type Renderer struct {
	GridColumns int
}

// NewRenderer returns a renderer laying grid figures out in the given number
// of columns.
func NewRenderer(gridColumns int) *Renderer {
	if gridColumns <= 0 {
		gridColumns = 5
	}
	return &Renderer{GridColumns: gridColumns}
}

// Overview renders every scenario against a log-scaled time axis into one
// figure at path.
func (r *Renderer) Overview(ds *domain.Dataset, path string) error {
	series := make([]chart.Series, 0, len(ds.Scenarios))
	for i, sc := range ds.Scenarios {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("%d,000 PgC", i+1),
			XValues: ds.Time,
			YValues: sc.Values,
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(i), StrokeWidth: 1.5},
		})
	}

	ch := chart.Chart{
		Title:  "CO2 Concentration Scenarios",
		Width:  overviewWidth,
		Height: overviewHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  "Time [log10(years)]",
			Range: logRange(ds.Time),
		},
		YAxis: chart.YAxis{
			Name:  "pCO2 anomaly [ppmv]",
			Range: &chart.ContinuousRange{Min: 0, Max: datasetMax(ds) * 1.05},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	return renderToFile(&ch, path)
}

// ChangepointGrid renders one panel per scenario, marking each detected
// changepoint with a dashed vertical reference line, and tiles the panels
// into a single figure at path. changepoints must be in scenario order.
func (r *Renderer) ChangepointGrid(ds *domain.Dataset, changepoints [][]int, path string) error {
	if len(changepoints) != len(ds.Scenarios) {
		return fmt.Errorf("changepoint sets (%d) do not match scenarios (%d)", len(changepoints), len(ds.Scenarios))
	}

	yMax := datasetMax(ds) * 1.05
	tiles := make([]image.Image, 0, len(ds.Scenarios))
	for i, sc := range ds.Scenarios {
		var lines []chart.GridLine
		for _, cp := range changepoints[i] {
			lines = append(lines, chart.GridLine{Value: ds.Time[cp]})
		}

		ch := chart.Chart{
			Title:  fmt.Sprintf("%d,000 PgC Scenario", i+1),
			Width:  tileWidth,
			Height: tileHeight,
			Background: chart.Style{
				Padding: chart.Box{Top: 10, Left: 10, Right: 10, Bottom: 10},
			},
			XAxis: chart.XAxis{
				Name:      "Time [years]",
				Range:     logRange(ds.Time),
				GridLines: lines,
				GridMajorStyle: chart.Style{
					StrokeColor:     chart.ColorRed,
					StrokeWidth:     1.0,
					StrokeDashArray: []float64{4.0, 4.0},
				},
			},
			YAxis: chart.YAxis{
				Name:  "pCO2 anomaly [ppmv]",
				Range: &chart.ContinuousRange{Min: 0, Max: yMax},
			},
			Series: []chart.Series{
				chart.ContinuousSeries{
					XValues: ds.Time,
					YValues: sc.Values,
					Style:   chart.Style{StrokeColor: chart.ColorBlue, StrokeWidth: 1.5},
				},
			},
		}

		var buf bytes.Buffer
		if err := ch.Render(chart.PNG, &buf); err != nil {
			return fmt.Errorf("failed to render panel %d: %w", i+1, err)
		}
		img, err := png.Decode(&buf)
		if err != nil {
			return fmt.Errorf("failed to decode panel %d: %w", i+1, err)
		}
		tiles = append(tiles, img)
	}

	grid := tileGrid(tiles, r.GridColumns, tileWidth, tileHeight)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, grid)
}

func renderToFile(ch *chart.Chart, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := ch.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return nil
}

// tileGrid lays tiles out row-major on a white canvas, cols per row.
func tileGrid(tiles []image.Image, cols, tileW, tileH int) image.Image {
	if cols > len(tiles) {
		cols = len(tiles)
	}
	rows := (len(tiles) + cols - 1) / cols

	canvas := image.NewRGBA(image.Rect(0, 0, cols*tileW, rows*tileH))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, tile := range tiles {
		x := (i % cols) * tileW
		y := (i / cols) * tileH
		rect := image.Rect(x, y, x+tileW, y+tileH)
		draw.Draw(canvas, rect, tile, tile.Bounds().Min, draw.Src)
	}
	return canvas
}

// logRange builds a log-scaled axis range over the positive span of the time
// vector. Log axes cannot include zero, so the lower bound clamps to the
// smallest positive timestamp.
func logRange(time []float64) *chart.LogarithmicRange {
	minPos, max := 0.0, 0.0
	for _, t := range time {
		if t > 0 && (minPos == 0 || t < minPos) {
			minPos = t
		}
		if t > max {
			max = t
		}
	}
	if minPos == 0 {
		minPos = 1
	}
	if max <= minPos {
		max = minPos * 10
	}
	return &chart.LogarithmicRange{Min: minPos, Max: max}
}

func datasetMax(ds *domain.Dataset) float64 {
	max := 0.0
	for _, sc := range ds.Scenarios {
		for _, v := range sc.Values {
			if v > max {
				max = v
			}
		}
	}
	if max == 0 {
		max = 1
	}
	return max
}
