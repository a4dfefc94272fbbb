// Package chart renders cell and module curves, as PNG with gonum/plot or as HTML with go-echarts.
package chart

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/elojah/pvcurve/internal/pv"
)

var (
	blue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	red  = color.RGBA{R: 214, G: 39, B: 40, A: 255}

	dashes = []vg.Length{vg.Points(6), vg.Points(3)}
)

// Width and Height of rendered images.
var (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	return pts
}

func newLine(x, y []float64, c color.Color, dashed bool) (*plotter.Line, error) {
	l, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1.5)
	if dashed {
		l.LineStyle.Dashes = dashes
	}

	return l, nil
}

// CellPNG draws the I-V curve with its MPP above the P-V curve of c.
func CellPNG(w io.Writer, c *pv.Cell) error {
	ch := c.Characteristics()

	iv := plot.New()
	iv.Title.Text = "Cell " + c.Label
	iv.X.Label.Text = "Voltage (V)"
	iv.Y.Label.Text = "Current (A)"
	iv.Add(plotter.NewGrid())

	ivLine, err := newLine(c.Vd, c.I, blue, false)
	if err != nil {
		return err
	}
	mpp, err := plotter.NewScatter(plotter.XYs{{X: ch.Vmpp, Y: ch.Impp}})
	if err != nil {
		return err
	}
	mpp.GlyphStyle.Color = red
	mpp.GlyphStyle.Shape = draw.CircleGlyph{}
	mpp.GlyphStyle.Radius = vg.Points(4)

	iv.Add(ivLine, mpp)
	iv.Legend.Add("IV Curve", ivLine)
	iv.Legend.Add("MPP", mpp)
	iv.Legend.Left = true

	pw := plot.New()
	pw.X.Label.Text = "Voltage (V)"
	pw.Y.Label.Text = "Power (W)"
	pw.Add(plotter.NewGrid())

	pLine, err := newLine(c.Vd, c.P, red, true)
	if err != nil {
		return err
	}
	pw.Add(pLine)
	pw.Legend.Add("Power", pLine)
	pw.Legend.Left = true

	img := vgimg.New(Width, Height)
	dc := draw.New(img)

	plots := [][]*plot.Plot{{iv}, {pw}}
	canvases := plot.Align(plots, draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}, dc)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)

	return err
}

// ModulePNG draws the unshaded and one-cell-shaded module curves against the shared current.
// The axes are clipped to the positive quadrant, shaded points with a negative voltage stay in the data.
func ModulePNG(w io.Writer, m *pv.Module) error {
	p := plot.New()
	p.Title.Text = "Unshaded & Nth Cell Shaded IV Curves"
	p.X.Label.Text = "Voltage (V)"
	p.Y.Label.Text = "Current (A)"
	p.Add(plotter.NewGrid())

	shaded, err := newLine(m.Vsh, m.I, red, true)
	if err != nil {
		return err
	}
	unshaded, err := newLine(m.V, m.I, blue, false)
	if err != nil {
		return err
	}

	p.Add(shaded, unshaded)
	p.Legend.Add("Nth Cell Shaded", shaded)
	p.Legend.Add("Unshaded", unshaded)
	p.Legend.Left = true

	p.X.Min = 0
	p.Y.Min = 0
	if len(m.V) > 0 {
		p.X.Max = m.V[len(m.V)-1] * 1.05
	}
	p.Y.Max = m.Isc * 1.05

	wt, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)

	return err
}
