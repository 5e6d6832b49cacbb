package artifact

import (
	"encoding/gob"
	"fmt"
	"os"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
	"pitcheck/internal/errors"
	"pitcheck/ports"
)

// GobStore reads and writes draw matrix artifacts as gob blobs. The matrix
// is produced once by the external sampler (hours of recomputed posteriors
// for a few hundred observations) and cached on disk; this store treats the
// file as an opaque array artifact.
type GobStore struct{}

// NewGobStore creates a new gob-backed draw matrix store
func NewGobStore() *GobStore {
	return &GobStore{}
}

// Load reads and shape-validates a draw matrix artifact
func (s *GobStore) Load(path string) (ports.DrawSource, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", core.ErrArtifactNotFound, path)
		}
		return nil, errors.ArtifactError("failed to open draw matrix", err)
	}
	defer f.Close()

	var m pit.DrawMatrix
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrArtifactMalformed, err)
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrapf(err, "draw matrix %s failed shape validation", path)
	}
	return &m, nil
}

// Save writes a draw matrix artifact, validating its shape first
func (s *GobStore) Save(path string, m *pit.DrawMatrix) error {
	if err := m.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.ArtifactError("failed to create draw matrix file", err)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return errors.ArtifactError("failed to encode draw matrix", err)
	}
	return nil
}
