package chart

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/elojah/pvcurve/internal/pv"
)

func lineData(x, y []float64) []opts.LineData {
	data := make([]opts.LineData, len(x))
	for i := range x {
		data[i] = opts.LineData{Value: []interface{}{x[i], y[i]}}
	}

	return data
}

func newValueLine(title, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:   opts.Bool(true),
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name:  "Voltage (V)",
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Current (A)",
			Type: "value",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	return line
}

// CellChart builds the I-V curve on the left axis and the P-V curve on the right axis.
func CellChart(c *pv.Cell) *charts.Line {
	ch := c.Characteristics()

	line := newValueLine("Cell "+c.Label, "I-V and P-V curves")
	line.ExtendYAxis(opts.YAxis{
		Name: "Power (W)",
		Type: "value",
	})

	line.AddSeries("IV Curve", lineData(c.Vd, c.I),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)
	line.AddSeries("Power", lineData(c.Vd, c.P),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), YAxisIndex: 1}),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
	)

	mpp := charts.NewScatter()
	mpp.AddSeries("MPP", []opts.ScatterData{{
		Value:      []interface{}{ch.Vmpp, ch.Impp},
		SymbolSize: 10,
	}})
	line.Overlap(mpp)

	return line
}

// ModuleChart builds the unshaded and one-cell-shaded module curves.
func ModuleChart(m *pv.Module) *charts.Line {
	line := newValueLine("Module", "Unshaded & Nth Cell Shaded IV Curves")

	line.AddSeries("Nth Cell Shaded", lineData(m.Vsh, m.I),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed"}),
	)
	line.AddSeries("Unshaded", lineData(m.V, m.I),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)

	return line
}

// CellHTML renders the chart of c as a standalone HTML page.
func CellHTML(w io.Writer, c *pv.Cell) error {
	return CellChart(c).Render(w)
}

// ModuleHTML renders the chart of m as a standalone HTML page.
func ModuleHTML(w io.Writer, m *pv.Module) error {
	return ModuleChart(m).Render(w)
}

// PageHTML renders every cell chart and the optional module chart on one page.
func PageHTML(w io.Writer, cells []*pv.Cell, m *pv.Module) error {
	page := components.NewPage()
	page.PageTitle = "PV curves"

	for _, c := range cells {
		page.AddCharts(CellChart(c))
	}
	if m != nil {
		page.AddCharts(ModuleChart(m))
	}

	return page.Render(w)
}
