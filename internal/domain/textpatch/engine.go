// Package textpatch applies ordered, purely textual edits to a source buffer.
//
// Steps never see a parse tree. Each one decides on its own whether its
// anchors are present, so a missing anchor only affects that step.
package textpatch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/openkraft/devkit/internal/domain"
)

// Run applies every step in order and returns the final text with one result
// per step. Later steps run even when earlier ones were skipped.
func Run(content string, steps []domain.PatchStep) (string, []domain.StepResult, error) {
	results := make([]domain.StepResult, 0, len(steps))
	for _, step := range steps {
		next, res, err := Apply(content, step)
		if err != nil {
			return content, results, err
		}
		content = next
		results = append(results, res)
	}
	return content, results, nil
}

// Apply runs a single step against content.
func Apply(content string, step domain.PatchStep) (string, domain.StepResult, error) {
	if err := step.Validate(); err != nil {
		return content, domain.StepResult{}, err
	}

	var (
		out     string
		outcome domain.StepOutcome
		detail  string
	)
	switch step.Kind {
	case domain.StepReplace:
		out, outcome, detail = replace(content, step)
	case domain.StepSplice:
		out, outcome, detail = splice(content, step)
	case domain.StepDeletePattern:
		out, outcome, detail = deletePattern(content, step)
	case domain.StepInsertBefore:
		out, outcome, detail = insertBefore(content, step)
	case domain.StepInsertAfterLast:
		out, outcome, detail = insertAfterLast(content, step)
	default:
		return content, domain.StepResult{}, fmt.Errorf("unknown step kind %q", step.Kind)
	}

	return out, domain.StepResult{
		Step:    step.Name,
		Kind:    step.Kind,
		Outcome: outcome,
		Detail:  detail,
	}, nil
}

func replace(content string, step domain.PatchStep) (string, domain.StepOutcome, string) {
	// Checked first so a replacement that contains its own search text stays idempotent.
	if applied(content, step) {
		return content, domain.OutcomeAlreadyApplied, "replacement already present"
	}
	n := strings.Count(content, step.Find)
	if n == 0 {
		return content, domain.OutcomeSkipped, "search text not found"
	}
	return strings.ReplaceAll(content, step.Find, step.Replace), domain.OutcomeApplied, plural(n, "occurrence") + " replaced"
}

func splice(content string, step domain.PatchStep) (string, domain.StepOutcome, string) {
	if applied(content, step) {
		return content, domain.OutcomeAlreadyApplied, "block already present"
	}
	start := strings.Index(content, step.Anchor)
	if start < 0 {
		return content, domain.OutcomeSkipped, "start anchor not found"
	}
	at := start + len(step.Anchor)
	if !strings.Contains(content[at:], step.EndAnchor) {
		return content, domain.OutcomeSkipped, "end anchor not found after start anchor"
	}
	return content[:at] + step.Block + content[at:], domain.OutcomeApplied, "block inserted between anchors"
}

func deletePattern(content string, step domain.PatchStep) (string, domain.StepOutcome, string) {
	re := regexp.MustCompile(step.Pattern)
	matches := re.FindAllStringIndex(content, -1)
	if len(matches) == 0 {
		return content, domain.OutcomeAlreadyApplied, "nothing left to delete"
	}
	return re.ReplaceAllLiteralString(content, ""), domain.OutcomeApplied, plural(len(matches), "match") + " deleted"
}

func insertBefore(content string, step domain.PatchStep) (string, domain.StepOutcome, string) {
	if applied(content, step) {
		return content, domain.OutcomeAlreadyApplied, "block already present"
	}
	i := strings.Index(content, step.Anchor)
	if i < 0 {
		return content, domain.OutcomeSkipped, "anchor not found"
	}
	return content[:i] + step.Block + content[i:], domain.OutcomeApplied, "block inserted before first anchor"
}

func insertAfterLast(content string, step domain.PatchStep) (string, domain.StepOutcome, string) {
	if applied(content, step) {
		return content, domain.OutcomeAlreadyApplied, "block already present"
	}
	i := strings.LastIndex(content, step.Anchor)
	if i < 0 {
		return content, domain.OutcomeSkipped, "anchor not found"
	}
	at := i + len(step.Anchor)
	return content[:at] + step.Block + content[at:], domain.OutcomeApplied, "block inserted after last anchor"
}

func applied(content string, step domain.PatchStep) bool {
	marker := step.AppliedMarker()
	return marker != "" && strings.Contains(content, marker)
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "ch") {
		return fmt.Sprintf("%d %ses", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
