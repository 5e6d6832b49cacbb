package plot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"

	"pitcheck/domain/pit"
	"pitcheck/internal/errors"
)

// RenderOverlay draws the PIT density diagnostic. The gray band is the
// boundary-corrected uniform reference series; the blue line is the
// boundary-corrected observed PIT density; the red line is the raw PIT
// density, which is where a dispersion defect shows its shape. A hump in
// the raw line says the predictive is too wide, a U shape says too narrow.
func RenderOverlay(path string, raw, corrected []float64, reference [][]float64, style Style) error {
	p := plot.New()
	p.Title.Text = "LOO-PIT density vs uniform reference"
	p.X.Label.Text = "PIT value"
	p.Y.Label.Text = "density"
	p.X.Min, p.X.Max = 0, 1
	p.Add(plotter.NewGrid())

	for _, series := range reference {
		line, err := densityLine(series, style)
		if err != nil {
			return errors.RenderError("failed to build reference density line", err)
		}
		line.Color = style.ReferenceColor
		line.Width = style.ReferenceWidth
		p.Add(line)
	}

	rawLine, err := densityLine(raw, style)
	if err != nil {
		return errors.RenderError("failed to build raw density line", err)
	}
	rawLine.Color = style.IdentityColor
	rawLine.Width = style.ObservedWidth
	p.Add(rawLine)
	p.Legend.Add("raw PIT", rawLine)

	observed, err := densityLine(corrected, style)
	if err != nil {
		return errors.RenderError("failed to build observed density line", err)
	}
	observed.Color = style.ObservedColor
	observed.Width = style.ObservedWidth
	p.Add(observed)
	p.Legend.Add("corrected PIT", observed)
	p.Legend.Top = true

	if err := p.Save(style.Width, style.Height, path); err != nil {
		return errors.RenderError("failed to save overlay plot", err)
	}
	return nil
}

func densityLine(sample []float64, style Style) (*plotter.Line, error) {
	xs, ys, err := pit.DensityCurve(sample, style.GridSize)
	if err != nil {
		return nil, err
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return plotter.NewLine(pts)
}
