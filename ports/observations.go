package ports

import (
	"pitcheck/domain/pit"
)

// ObservationReader loads the tabular observation data (response, covariate,
// group label) from a delimited or spreadsheet file
type ObservationReader interface {
	ReadObservations(path string) ([]pit.Observation, error)
}
