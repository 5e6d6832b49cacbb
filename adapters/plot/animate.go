package plot

import (
	"fmt"
	"image"
	"image/color/palette"
	imagedraw "image/draw"
	"image/gif"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"pitcheck/domain/core"
	"pitcheck/internal/errors"
)

// frameDelay is the GIF inter-frame delay in hundredths of a second
const frameDelay = 12

// RenderAnimation writes a GIF showing the empirical CDF of the
// boundary-corrected PIT values accumulating observation by observation,
// in observation order. Each frame re-sorts the prefix seen so far; the
// dashed identity line is the calibrated target.
func RenderAnimation(path string, corrected []float64, frames int, style Style) error {
	if len(corrected) == 0 {
		return core.ErrEmptyInput
	}
	if frames <= 0 {
		return fmt.Errorf("%w: frames %d", core.ErrNonPositive, frames)
	}
	if frames > len(corrected) {
		frames = len(corrected)
	}

	anim := &gif.GIF{}
	for f := 1; f <= frames; f++ {
		// prefix length for this frame, last frame covers everything
		count := len(corrected) * f / frames
		if count < 1 {
			count = 1
		}

		frame, err := ecdfFrame(corrected[:count], len(corrected), style)
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	// hold the final state
	if n := len(anim.Delay); n > 0 {
		anim.Delay[n-1] = frameDelay * 8
	}

	out, err := os.Create(path)
	if err != nil {
		return errors.RenderError("failed to create animation file", err)
	}
	defer out.Close()

	if err := gif.EncodeAll(out, anim); err != nil {
		return errors.RenderError("failed to encode animation", err)
	}
	return nil
}

func ecdfFrame(prefix []float64, total int, style Style) (*image.Paletted, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("PIT ECDF, %d of %d observations", len(prefix), total)
	p.X.Label.Text = "PIT value"
	p.Y.Label.Text = "cumulative probability"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())
	p.Add(identityLine(style))

	steps, err := plotter.NewLine(ecdfPoints(prefix))
	if err != nil {
		return nil, errors.RenderError("failed to build animation frame", err)
	}
	steps.Color = style.ObservedColor
	steps.Width = style.ObservedWidth
	steps.StepStyle = plotter.PostStep
	p.Add(steps)

	canvas := vgimg.New(style.Width, style.Height)
	p.Draw(draw.New(canvas))

	rendered := canvas.Image()
	paletted := image.NewPaletted(rendered.Bounds(), palette.Plan9)
	imagedraw.FloydSteinberg.Draw(paletted, rendered.Bounds(), rendered, image.Point{})
	return paletted, nil
}
