package analysis

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// SlopeChart renders a sweep of slope decompositions as an HTML scatter
// chart, one point per eigenvalue valuation, weight on the x axis.
func SlopeChart(title string, sweep []WeightPoint, w io.Writer) error {
	if len(sweep) == 0 {
		return fmt.Errorf("analysis: empty sweep")
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "eigenvalue valuations at infinity, by weight",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "weight k",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "valuation",
			Type: "value",
		}),
		charts.WithDataZoomOpts(
			opts.DataZoom{Type: "inside"},
			opts.DataZoom{Type: "slider"},
		),
	)

	items := make([]opts.ScatterData, 0, len(sweep))
	for _, pt := range sweep {
		for _, s := range pt.Slopes {
			v, _ := s.Slope.Float64()
			items = append(items, opts.ScatterData{
				Value:      []interface{}{pt.Weight, v},
				SymbolSize: 6 + 2*s.Multiplicity,
			})
		}
	}
	sc.AddSeries("slopes", items)

	page := components.NewPage().SetPageTitle(title)
	page.AddCharts(sc)
	return page.Render(w)
}
