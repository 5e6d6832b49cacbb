package plot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"pitcheck/domain/core"
	"pitcheck/internal/errors"
)

// RenderGroupPanel draws one PNG for a group: its PIT density on the left
// and its empirical CDF against the identity line on the right. Returns the
// written file path.
func RenderGroupPanel(dir string, group core.GroupLabel, corrected []float64, style Style) (string, error) {
	density := plot.New()
	density.Title.Text = fmt.Sprintf("%s: PIT density", group)
	density.X.Label.Text = "PIT value"
	density.Y.Label.Text = "density"
	density.X.Min, density.X.Max = 0, 1
	density.Add(plotter.NewGrid())

	line, err := densityLine(corrected, style)
	if err != nil {
		return "", errors.RenderError("failed to build group density line", err)
	}
	line.Color = style.ObservedColor
	line.Width = style.ObservedWidth
	density.Add(line)

	ecdf := plot.New()
	ecdf.Title.Text = fmt.Sprintf("%s: PIT ECDF", group)
	ecdf.X.Label.Text = "PIT value"
	ecdf.Y.Label.Text = "cumulative probability"
	ecdf.X.Min, ecdf.X.Max = 0, 1
	ecdf.Y.Min, ecdf.Y.Max = 0, 1
	ecdf.Add(plotter.NewGrid())

	identity := identityLine(style)
	ecdf.Add(identity)

	steps, err := plotter.NewLine(ecdfPoints(corrected))
	if err != nil {
		return "", errors.RenderError("failed to build ECDF line", err)
	}
	steps.Color = style.ObservedColor
	steps.Width = style.ObservedWidth
	steps.StepStyle = plotter.PostStep
	ecdf.Add(steps)

	img := vgimg.New(style.Width*2, style.Height)
	dc := draw.New(img)
	tiles := draw.Tiles{Rows: 1, Cols: 2, PadX: vg.Millimeter, PadY: vg.Millimeter}

	plots := [][]*plot.Plot{{density, ecdf}}
	canvases := plot.Align(plots, tiles, dc)
	density.Draw(canvases[0][0])
	ecdf.Draw(canvases[0][1])

	path := filepath.Join(dir, fmt.Sprintf("pit_panel_%s.png", sanitize(group.String())))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.RenderError("failed to create panel file", err)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return "", errors.RenderError("failed to write panel image", err)
	}
	return path, nil
}

// ecdfPoints returns the step points of the empirical CDF of values
func ecdfPoints(values []float64) plotter.XYs {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := float64(len(sorted))
	pts := make(plotter.XYs, 0, len(sorted)+2)
	pts = append(pts, plotter.XY{X: 0, Y: 0})
	for i, v := range sorted {
		pts = append(pts, plotter.XY{X: v, Y: float64(i+1) / n})
	}
	pts = append(pts, plotter.XY{X: 1, Y: 1})
	return pts
}

func identityLine(style Style) *plotter.Line {
	line, _ := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 1, Y: 1}})
	line.Color = style.IdentityColor
	line.Width = style.ReferenceWidth
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	return line
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
