package tui

import (
	"fmt"
	"strings"

	"github.com/mrz1836/integrityforge/internal/manifest"
)

// RenderResult renders one validation result as a single line:
// icon, path, status, and the failure detail when there is one.
func RenderResult(r manifest.Result) string {
	style := StatusStyle(r.Status)
	line := style.Render(FormatStatusWithIcon(r.Status, r.Path)) +
		" " + StyleDim.Render("("+string(r.Algorithm)+")")

	switch r.Status {
	case manifest.StatusFailed:
		if r.Observed != "" {
			line += "\n    " + StyleDim.Render("expected "+r.Expected) +
				"\n    " + StyleDim.Render("observed "+r.Observed)
		} else if r.Error != "" {
			line += "\n    " + StyleDim.Render(r.Error)
		}
	case manifest.StatusErrored:
		if r.Error != "" {
			line += "\n    " + StyleDim.Render(r.Error)
		}
	case manifest.StatusPassed:
	}

	return line
}

// RenderSummary renders a full batch summary: per-entry lines in manifest
// order, parse errors, and the outcome counts.
func RenderSummary(s *manifest.Summary) string {
	var b strings.Builder

	for _, r := range s.Results {
		b.WriteString(RenderResult(r))
		b.WriteString("\n")
	}

	styles := NewOutputStyles()
	for _, pe := range s.ParseErrors {
		b.WriteString(styles.Error.Render(fmt.Sprintf("✗ %s:%d: %s", s.Source, pe.Line, pe.Reason)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(renderCounts(s, styles))
	b.WriteString("\n")

	return b.String()
}

// renderCounts renders the one-line totals footer.
func renderCounts(s *manifest.Summary, styles *OutputStyles) string {
	parts := []string{
		styles.Success.Render(fmt.Sprintf("%d passed", s.Passed)),
	}
	if s.Failed > 0 || len(s.ParseErrors) > 0 {
		parts = append(parts, styles.Error.Render(fmt.Sprintf("%d failed", s.Failed+len(s.ParseErrors))))
	}
	if s.Errored > 0 {
		parts = append(parts, styles.Warning.Render(fmt.Sprintf("%d errored", s.Errored)))
	}
	parts = append(parts, StyleDim.Render(fmt.Sprintf("in %dms", s.DurationMs)))

	return strings.Join(parts, ", ")
}
