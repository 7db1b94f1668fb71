package cli

import (
	"fmt"
	"strings"

	"github.com/blerta-dev/farmakit/internal/consolidate"
	"github.com/blerta-dev/farmakit/internal/engine"
)

// RenderClassifySummary formats a classification pass for the operator.
func RenderClassifySummary(s *engine.ClassifySummary) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Classification complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", SuccessStyle.Render(fmt.Sprintf("%d of %d products classified", s.Classified, s.Total)))
	if s.Fallback > 0 {
		fmt.Fprintf(&b, "  %s\n", WarningStyle.Render(fmt.Sprintf("%d products fell back to the default category and need manual review", s.Fallback)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(&b, "  %s\n", ErrorStyle.Render(fmt.Sprintf("%d products failed to persist", s.Failed)))
	}
	return b.String()
}

// RenderMatchSummary formats an image-matching pass for the operator.
func RenderMatchSummary(s *engine.MatchSummary) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Image matching complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(fmt.Sprintf("%d images in inventory", s.Images)))
	fmt.Fprintf(&b, "  %s\n", SuccessStyle.Render(fmt.Sprintf("%d of %d products matched", s.Matched, s.Total)))
	if s.Unmatched > 0 {
		fmt.Fprintf(&b, "  %s\n", WarningStyle.Render(fmt.Sprintf("%d products remain unmatched", s.Unmatched)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(&b, "  %s\n", ErrorStyle.Render(fmt.Sprintf("%d assignments failed to persist", s.Failed)))
	}
	return b.String()
}

// RenderConsolidateReport formats a consolidation run for the operator.
func RenderConsolidateReport(r *consolidate.Report) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Consolidation complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", SuccessStyle.Render(fmt.Sprintf("%d images copied", r.Copied)))
	fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(fmt.Sprintf("%d duplicates skipped", r.Skipped)))
	if r.Failed > 0 {
		fmt.Fprintf(&b, "  %s\n", ErrorStyle.Render(fmt.Sprintf("%d files could not be processed", r.Failed)))
	}
	return b.String()
}

// RenderRepairSummary formats a shared-assignment repair pass.
func RenderRepairSummary(s *engine.RepairSummary) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Shared-image repair complete"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", SuccessStyle.Render(fmt.Sprintf("%d assignments repaired", s.Fixed)))
	if s.Unfixed > 0 {
		fmt.Fprintf(&b, "  %s\n", WarningStyle.Render(fmt.Sprintf("%d products left on shared images, pool exhausted", s.Unfixed)))
	}
	if s.Failed > 0 {
		fmt.Fprintf(&b, "  %s\n", ErrorStyle.Render(fmt.Sprintf("%d repairs failed to persist", s.Failed)))
	}
	return b.String()
}
