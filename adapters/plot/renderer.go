package plot

import (
	"pitcheck/domain/core"
	"pitcheck/ports"
)

// Renderer implements ports.Renderer with gonum/plot, carrying an explicit
// Style instead of global plotting configuration
type Renderer struct {
	style Style
}

// NewRenderer creates a renderer with the given style
func NewRenderer(style Style) ports.Renderer {
	return &Renderer{style: style}
}

func (r *Renderer) RenderOverlay(path string, raw, corrected []float64, reference [][]float64) error {
	return RenderOverlay(path, raw, corrected, reference, r.style)
}

func (r *Renderer) RenderGroupPanel(dir string, group core.GroupLabel, corrected []float64) (string, error) {
	return RenderGroupPanel(dir, group, corrected, r.style)
}

func (r *Renderer) RenderAnimation(path string, corrected []float64, frames int) error {
	return RenderAnimation(path, corrected, frames, r.style)
}
