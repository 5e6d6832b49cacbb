package app

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
	"pitcheck/internal"
	"pitcheck/internal/errors"
	"pitcheck/internal/report"
	"pitcheck/ports"
)

// CalibrationService runs the full LOO-PIT calibration pipeline:
// load -> raw PIT -> boundary correction -> reference band -> diagnostics
// -> plots -> report -> optional persistence.
type CalibrationService struct {
	reader   ports.ObservationReader
	store    ports.DrawStore
	renderer ports.Renderer
	rng      ports.RNG
	repo     ports.RunRepository // nil disables persistence
	logger   *internal.Logger
}

// NewCalibrationService creates a calibration service. repo may be nil.
func NewCalibrationService(
	reader ports.ObservationReader,
	store ports.DrawStore,
	renderer ports.Renderer,
	rng ports.RNG,
	repo ports.RunRepository,
	logger *internal.Logger,
) *CalibrationService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CalibrationService{
		reader:   reader,
		store:    store,
		renderer: renderer,
		rng:      rng,
		repo:     repo,
		logger:   logger,
	}
}

// RunRequest carries every knob of one pipeline invocation explicitly,
// so repeated runs with the same request are reproducible
type RunRequest struct {
	ObsPath         string
	DrawsPath       string
	OutDir          string
	Seed            int64
	RefSeries       int
	AnimationFrames int
	Bandwidth       float64 // <= 0 selects Silverman's rule
	Animate         bool
}

// RunResult reports what one pipeline invocation produced
type RunResult struct {
	RunID         core.RunID
	Raw           []float64
	Corrected     []float64
	Diagnostics   pit.Diagnostics
	Groups        []report.GroupSection
	OverlayPath   string
	AnimationPath string
	ReportPath    string
}

// Run executes the pipeline. Each stage runs to completion before the next;
// only the data-independent per-group panels render concurrently.
func (s *CalibrationService) Run(ctx context.Context, req RunRequest) (*RunResult, error) {
	runID := core.RunID(core.NewID())
	s.logger.Info("calibration run %s: obs=%s draws=%s seed=%d", runID, req.ObsPath, req.DrawsPath, req.Seed)

	observations, err := s.reader.ReadObservations(req.ObsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load observations")
	}

	src, err := s.store.Load(req.DrawsPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load draw matrix")
	}
	if src.Len() != len(observations) {
		return nil, errors.InvalidInput(fmt.Sprintf(
			"draw matrix covers %d observations but table has %d", src.Len(), len(observations)))
	}
	s.checkArtifactAgreement(observations, src)

	raw := make([]float64, src.Len())
	for i := range raw {
		v, err := pit.RawPIT(src.PosteriorDraws(i), src.ObservedValue(i))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to compute PIT for observation %d", i)
		}
		raw[i] = v
	}
	s.logger.Debug("computed %d raw PIT values", len(raw))

	var opts []pit.CorrectionOption
	if req.Bandwidth > 0 {
		opts = append(opts, pit.WithBandwidth(req.Bandwidth))
	}

	corrected, err := pit.BoundaryCorrect(raw, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "boundary correction failed")
	}

	refSeries := req.RefSeries
	if refSeries <= 0 {
		refSeries = 50
	}
	reference, err := pit.GenerateReferenceSeries(s.rng.Stream("reference", req.Seed), refSeries, len(corrected), opts...)
	if err != nil {
		return nil, errors.Wrap(err, "reference series generation failed")
	}

	// the verdict reads the raw values: the correction is a display
	// transform and re-expressing a sample through its own smoothed CDF
	// flattens the dispersion signal the verdict needs
	diagnostics, err := pit.Diagnose(raw)
	if err != nil {
		return nil, errors.Wrap(err, "diagnostics failed")
	}
	s.logger.Info("verdict: %s (variance=%.4f, KS=%.4f)", diagnostics.Verdict, diagnostics.Variance, diagnostics.KSStatistic)

	if err := os.MkdirAll(req.OutDir, 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create output directory")
	}

	result := &RunResult{
		RunID:       runID,
		Raw:         raw,
		Corrected:   corrected,
		Diagnostics: diagnostics,
	}

	result.OverlayPath = filepath.Join(req.OutDir, "pit_overlay.png")
	if err := s.renderer.RenderOverlay(result.OverlayPath, raw, corrected, reference); err != nil {
		return nil, errors.Wrap(err, "overlay rendering failed")
	}

	result.Groups, err = s.renderGroupPanels(ctx, req.OutDir, observations, raw, corrected)
	if err != nil {
		return nil, err
	}

	if req.Animate {
		frames := req.AnimationFrames
		if frames <= 0 {
			frames = 40
		}
		result.AnimationPath = filepath.Join(req.OutDir, "pit_accumulation.gif")
		if err := s.renderer.RenderAnimation(result.AnimationPath, corrected, frames); err != nil {
			return nil, errors.Wrap(err, "animation rendering failed")
		}
	}

	result.ReportPath, err = report.Write(req.OutDir, report.Report{
		RunID:         runID,
		GeneratedAt:   core.Now(),
		Observations:  len(observations),
		DrawsPerObs:   len(src.PosteriorDraws(0)),
		Seed:          req.Seed,
		Overall:       diagnostics,
		Groups:        result.Groups,
		OverlayPath:   result.OverlayPath,
		AnimationPath: result.AnimationPath,
	})
	if err != nil {
		return nil, err
	}

	if s.repo != nil {
		summary := &ports.RunSummary{
			ID:           runID,
			ObsPath:      req.ObsPath,
			DrawsPath:    req.DrawsPath,
			Observations: len(observations),
			DrawsPerObs:  len(src.PosteriorDraws(0)),
			Seed:         req.Seed,
			Diagnostics:  diagnostics,
			CreatedAt:    core.Now(),
		}
		if err := s.repo.Create(ctx, summary); err != nil {
			// persistence is best effort; the analysis artifacts already exist
			s.logger.Warn("failed to persist run summary: %v", err)
		}
	}

	s.logger.Info("run %s complete: %s", runID, result.ReportPath)
	return result, nil
}

// renderGroupPanels diagnoses and renders every group's panel. Panels are
// independent so they render under an errgroup; results keep group order.
func (s *CalibrationService) renderGroupPanels(ctx context.Context, outDir string, observations []pit.Observation, raw, corrected []float64) ([]report.GroupSection, error) {
	groups := pit.Groups(observations)
	sections := make([]report.GroupSection, len(groups))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	var mu sync.Mutex
	for gi, label := range groups {
		gi, label := gi, label
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			indices := pit.GroupIndices(observations, label)
			rawSubset := make([]float64, len(indices))
			correctedSubset := make([]float64, len(indices))
			for i, idx := range indices {
				rawSubset[i] = raw[idx]
				correctedSubset[i] = corrected[idx]
			}

			diag, err := pit.Diagnose(rawSubset)
			if err != nil {
				return errors.Wrapf(err, "diagnostics failed for group %s", label)
			}

			path, err := s.renderer.RenderGroupPanel(outDir, label, correctedSubset)
			if err != nil {
				return errors.Wrapf(err, "panel rendering failed for group %s", label)
			}

			mu.Lock()
			sections[gi] = report.GroupSection{Group: label, Diagnostics: diag, PanelPath: path}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

// checkArtifactAgreement warns when the observed values baked into the draw
// artifact drift from the observation table; the two are produced by
// different steps and can fall out of sync
func (s *CalibrationService) checkArtifactAgreement(observations []pit.Observation, src ports.DrawSource) {
	for i, obs := range observations {
		if math.Abs(obs.Response-src.ObservedValue(i)) > 1e-9 {
			s.logger.Warn("observation %d: table response %.6f differs from artifact observed %.6f",
				i, obs.Response, src.ObservedValue(i))
			return
		}
	}
}
