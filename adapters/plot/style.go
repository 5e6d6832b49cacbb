package plot

import (
	"image/color"

	"gonum.org/v1/plot/vg"
)

// Style carries every visual parameter a rendering call needs. Passed
// explicitly into each call so plots are reproducible without ambient
// session state.
type Style struct {
	Width  vg.Length
	Height vg.Length

	ObservedColor  color.Color
	ReferenceColor color.Color
	IdentityColor  color.Color

	ObservedWidth  vg.Length
	ReferenceWidth vg.Length

	GridSize int // density evaluation points across [0,1]
}

// DefaultStyle returns the stock diagnostic palette: observed series in a
// strong blue over thin light-gray reference bands
func DefaultStyle() Style {
	return Style{
		Width:          6 * vg.Inch,
		Height:         4 * vg.Inch,
		ObservedColor:  color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
		ReferenceColor: color.RGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 0x90},
		IdentityColor:  color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
		ObservedWidth:  vg.Points(2),
		ReferenceWidth: vg.Points(0.75),
		GridSize:       201,
	}
}
