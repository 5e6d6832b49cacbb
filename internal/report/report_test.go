package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()

	htmlPath, err := Write(dir, Report{
		RunID:        core.RunID("run-1"),
		GeneratedAt:  core.Now(),
		Observations: 120,
		DrawsPerObs:  3000,
		Seed:         42,
		Overall: pit.Diagnostics{
			N:           120,
			Mean:        0.51,
			Variance:    0.082,
			KSStatistic: 0.04,
			KSPValue:    0.92,
			Verdict:     pit.VerdictWellCalibrated,
			Description: "looks fine",
		},
		Groups: []GroupSection{
			{Group: "north", Diagnostics: pit.Diagnostics{N: 30, Verdict: pit.VerdictWellCalibrated}, PanelPath: filepath.Join(dir, "pit_panel_north.png")},
		},
		OverlayPath:   filepath.Join(dir, "pit_overlay.png"),
		AnimationPath: filepath.Join(dir, "pit_accumulation.gif"),
	})
	require.NoError(t, err)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(html), "well_calibrated"))
	assert.True(t, strings.Contains(string(html), "pit_overlay.png"))
	assert.True(t, strings.Contains(string(html), "north"))

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# LOO-PIT calibration report"))
}
