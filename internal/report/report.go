package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"pitcheck/domain/core"
	"pitcheck/domain/pit"
	"pitcheck/internal/errors"
)

// GroupSection holds the per-group slice of a report
type GroupSection struct {
	Group       core.GroupLabel
	Diagnostics pit.Diagnostics
	PanelPath   string
}

// Report collects everything a calibration run produced
type Report struct {
	RunID         core.RunID
	GeneratedAt   core.Timestamp
	Observations  int
	DrawsPerObs   int
	Seed          int64
	Overall       pit.Diagnostics
	Groups        []GroupSection
	OverlayPath   string
	AnimationPath string
}

// Write renders the report as markdown and HTML next to the plots.
// Returns the HTML path.
func Write(dir string, r Report) (string, error) {
	md := buildMarkdown(r)

	mdPath := filepath.Join(dir, "report.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write markdown report")
	}

	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, renderHTML(md), 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write HTML report")
	}
	return htmlPath, nil
}

func buildMarkdown(r Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# LOO-PIT calibration report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", r.GeneratedAt.Time().Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&b, "- Observations: %d, draws per observation: %d, seed: %d\n\n", r.Observations, r.DrawsPerObs, r.Seed)

	fmt.Fprintf(&b, "## Verdict: %s\n\n", r.Overall.Verdict)
	fmt.Fprintf(&b, "%s\n\n", r.Overall.Description)

	fmt.Fprintf(&b, "| metric | value |\n|---|---|\n")
	fmt.Fprintf(&b, "| mean | %.4f |\n", r.Overall.Mean)
	fmt.Fprintf(&b, "| median | %.4f |\n", r.Overall.Median)
	fmt.Fprintf(&b, "| variance | %.4f (uniform: %.4f) |\n", r.Overall.Variance, 1.0/12.0)
	fmt.Fprintf(&b, "| KS statistic | %.4f |\n", r.Overall.KSStatistic)
	fmt.Fprintf(&b, "| KS p-value | %.3f |\n\n", r.Overall.KSPValue)

	if r.OverlayPath != "" {
		fmt.Fprintf(&b, "![density overlay](%s)\n\n", filepath.Base(r.OverlayPath))
	}

	if len(r.Groups) > 0 {
		fmt.Fprintf(&b, "## Groups\n\n")
		fmt.Fprintf(&b, "| group | n | variance | KS | verdict |\n|---|---|---|---|---|\n")
		for _, g := range r.Groups {
			fmt.Fprintf(&b, "| %s | %d | %.4f | %.4f | %s |\n",
				g.Group, g.Diagnostics.N, g.Diagnostics.Variance, g.Diagnostics.KSStatistic, g.Diagnostics.Verdict)
		}
		fmt.Fprintf(&b, "\n")
		for _, g := range r.Groups {
			if g.PanelPath != "" {
				fmt.Fprintf(&b, "![%s panel](%s)\n\n", g.Group, filepath.Base(g.PanelPath))
			}
		}
	}

	if r.AnimationPath != "" {
		fmt.Fprintf(&b, "## Accumulation\n\n![ECDF accumulation](%s)\n", filepath.Base(r.AnimationPath))
	}
	return b.String()
}

func renderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: "LOO-PIT calibration report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
