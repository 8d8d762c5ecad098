package tui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/openkraft/devkit/internal/domain"
)

// ── Warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)

	dimStyle           = lipgloss.NewStyle().Foreground(dim)
	faintStyle         = lipgloss.NewStyle().Foreground(faint)
	passStyle          = lipgloss.NewStyle().Foreground(success)
	failStyle          = lipgloss.NewStyle().Foreground(danger)
	warnStyle          = lipgloss.NewStyle().Foreground(warning)
	skipStyle          = lipgloss.NewStyle().Foreground(skipColor)
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(fg)
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// IsTerminal reports whether w is a terminal. Only *os.File can be one.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderLintSummary prints the total, the ranking and the samples. Ranking
// and sample lines are unstyled so they can be piped; the sample block is
// always the last thing written.
func RenderLintSummary(s *domain.LintSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Total files with errors: %d\n", s.FilesWithErrors)

	if len(s.Ranking) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionHeaderStyle.Render("Top files by message count:"))
		b.WriteString("\n")
		for _, fc := range s.Ranking {
			fmt.Fprintf(&b, "%d %s\n", fc.Count, fc.Path)
		}
	}

	if len(s.Samples) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionHeaderStyle.Render("Sample messages:"))
		b.WriteString("\n")
		for _, smp := range s.Samples {
			b.WriteString(smp.String())
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderPatchReport renders per-step progress followed by the outcome banner.
// boxed draws the banner with a border; callers pass IsTerminal(out).
func RenderPatchReport(r *domain.PatchReport, boxed bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %s\n",
		titleStyle.Render("Applying fixes to"),
		r.Target,
		dimStyle.Render("(recipe "+r.Recipe+")"),
	)
	renderSteps(&b, r.Results)

	if r.Uncommitted {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("warning: %s has uncommitted changes", r.Target)))
		b.WriteString("\n")
	}

	if len(r.SyntaxIssues) > 0 {
		b.WriteString("\n")
		renderSyntaxIssues(&b, r.Target, r.SyntaxIssues)
	}

	if r.Diff != "" {
		b.WriteString("\n")
		b.WriteString(r.Diff)
	}

	b.WriteString("\n")
	b.WriteString(banner(r, boxed))
	b.WriteString("\n")

	if r.Written {
		b.WriteString(hintStyle.Render(fmt.Sprintf("To revert, run: git checkout -- %s", r.Target)))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPatchSteps renders only the step lines, for runs that failed after
// the steps were evaluated.
func RenderPatchSteps(r *domain.PatchReport) string {
	if r == nil || len(r.Results) == 0 {
		return ""
	}
	var b strings.Builder
	renderSteps(&b, r.Results)
	if len(r.SyntaxIssues) > 0 {
		renderSyntaxIssues(&b, r.Target, r.SyntaxIssues)
	}
	return b.String()
}

// RenderPatchFailure is the single line printed when a patch run fails.
func RenderPatchFailure(err error) string {
	return failStyle.Render(fmt.Sprintf("Error applying fixes: %v", err)) + "\n"
}

func renderSteps(b *strings.Builder, results []domain.StepResult) {
	n := len(results)
	for i, res := range results {
		counter := dimStyle.Render(fmt.Sprintf("[%d/%d]", i+1, n))
		line := fmt.Sprintf("%s %s ... %s", counter, res.Step, outcomeTag(res.Outcome))
		if res.Detail != "" {
			line += "  " + faintStyle.Render(res.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
}

func renderSyntaxIssues(b *strings.Builder, target string, issues []domain.SyntaxIssue) {
	fmt.Fprintf(b, "%s %s\n",
		sectionHeaderStyle.Render("Syntax errors"),
		dimStyle.Render(fmt.Sprintf("(%d)", len(issues))),
	)
	for _, is := range issues {
		fmt.Fprintf(b, "  %s %s:%d:%d %s\n", failStyle.Render("●"), target, is.Line, is.Column, is.Message)
	}
}

func outcomeTag(o domain.StepOutcome) string {
	switch o {
	case domain.OutcomeApplied:
		return passStyle.Render("applied")
	case domain.OutcomeAlreadyApplied:
		return dimStyle.Render("already applied")
	default:
		return skipStyle.Render("skipped")
	}
}

func banner(r *domain.PatchReport, boxed bool) string {
	applied := r.Count(domain.OutcomeApplied)
	skipped := r.Count(domain.OutcomeSkipped)

	var msg string
	switch {
	case r.DryRun && r.Changed:
		msg = passStyle.Render(fmt.Sprintf("Dry run: %d fix(es) would be applied, nothing written.", applied))
	case r.DryRun:
		msg = dimStyle.Render("Dry run: no changes needed.")
	case r.Written:
		msg = passStyle.Render(fmt.Sprintf("All fixes applied successfully! (%d applied)", applied))
	default:
		msg = dimStyle.Render("No changes needed, file left untouched.")
	}
	if skipped > 0 {
		msg += "\n" + warnStyle.Render(fmt.Sprintf("%d step(s) skipped: expected text not found.", skipped))
	}

	if boxed {
		return boxStyle.Render(msg)
	}
	return msg
}

// RenderSlices prints each non-empty slice as "N: text" lines, blocks
// separated by a blank line.
func RenderSlices(slices []domain.LineSlice) string {
	var b strings.Builder
	first := true
	for _, s := range slices {
		if len(s.Lines) == 0 {
			continue
		}
		if !first {
			b.WriteString("\n")
		}
		first = false
		for _, l := range s.Lines {
			b.WriteString(l.String())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderOutline lists headings with their line numbers, indented by level.
func RenderOutline(headings []domain.Heading) string {
	if len(headings) == 0 {
		return dimStyle.Render("No headings found.") + "\n"
	}
	var b strings.Builder
	for _, h := range headings {
		indent := strings.Repeat("  ", max(h.Level-1, 0))
		fmt.Fprintf(&b, "%5d  %s%s %s\n",
			h.Line,
			indent,
			faintStyle.Render(strings.Repeat("#", h.Level)),
			h.Text,
		)
	}
	return b.String()
}
