// Package report renders QA charts for merged datasets.
package report

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/hydrostrat/texprep/internal/texture"
)

// WriteWellMap renders a scatter map of distinct well locations to a
// standalone HTML file.
func WriteWellMap(path string, coords []texture.WellCoord) error {
	data := make([]opts.ScatterData, 0, len(coords))
	for _, c := range coords {
		data = append(data, opts.ScatterData{
			Name:  fmt.Sprintf("well %d", c.WellID),
			Value: []interface{}{c.X, c.Y},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Well Locations", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Well Locations", Subtitle: fmt.Sprintf("wells=%d", len(coords))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y", NameLocation: "middle", NameGap: 30, Scale: opts.Bool(true)}),
	)
	scatter.AddSeries("wells", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create well map: %w", err)
	}
	defer f.Close()
	if err := scatter.Render(f); err != nil {
		return fmt.Errorf("failed to render well map: %w", err)
	}
	return nil
}
