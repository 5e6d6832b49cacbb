package ports

// DrawSource exposes the precomputed leave-one-out posterior predictive
// draws behind a narrow interface, decoupling the transform from the
// external sampler's serialization format.
type DrawSource interface {
	// Len returns the number of observations covered
	Len() int

	// PosteriorDraws returns the predictive draws for observation i
	PosteriorDraws(i int) []float64

	// ObservedValue returns the observed response for observation i
	ObservedValue(i int) float64
}

// DrawStore loads a draw matrix artifact from an opaque file
type DrawStore interface {
	Load(path string) (DrawSource, error)
}
