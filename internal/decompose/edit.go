package decompose

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/api"
)

// EditOutcome describes the result of a list edit for user feedback.
type EditOutcome int

const (
	// EditApplied means the returned list differs from the input.
	EditApplied EditOutcome = iota
	// EditNoChanges means the model returned an empty or identical list.
	EditNoChanges
	// EditRemoveBlocked means a remove instruction did not reduce the
	// list length, so the edit was discarded.
	EditRemoveBlocked
	// EditRequestFailed means the gateway call failed.
	EditRequestFailed
)

func (o EditOutcome) String() string {
	switch o {
	case EditApplied:
		return "applied"
	case EditNoChanges:
		return "no changes"
	case EditRemoveBlocked:
		return "remove blocked"
	case EditRequestFailed:
		return "request failed"
	default:
		return "unknown"
	}
}

// EditList applies a free-form natural-language modification to an ordered
// subtask list. The current list is never mutated; on any failure or no-op
// the input list is returned unchanged together with the reason.
//
// Remove instructions carry an extra guard: if the instruction contains
// "remove" (case-insensitive) but the parsed result is not strictly shorter
// than the input, the edit is treated as a no-op. Other shrinking edits are
// deliberately not guarded; this mirrors long-standing product behavior.
func EditList(ctx context.Context, gen api.Generator, current []string, instruction string) ([]string, EditOutcome) {
	prompt := fmt.Sprintf(editPrompt, numberList(current), instruction)

	response, err := gen.Generate(ctx, prompt, 500, 0.6)
	if err != nil {
		return current, EditRequestFailed
	}

	updated := ParseNumberedList(response)
	if len(updated) == 0 {
		return current, EditNoChanges
	}

	if strings.Contains(strings.ToLower(instruction), "remove") {
		if len(updated) < len(current) {
			return updated, EditApplied
		}
		return current, EditRemoveBlocked
	}

	if slices.Equal(updated, current) {
		return current, EditNoChanges
	}
	return updated, EditApplied
}

// numberList renders items as a 1-based numbered list, one per line.
func numberList(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}
