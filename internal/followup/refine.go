package followup

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

// refineExcerptChars is the per-file context cap for the refine prompt.
const refineExcerptChars = 300

const refinePrompt = `Based on the original objective, user answers, and uploaded files, create a comprehensive refined objective.

ORIGINAL OBJECTIVE: %s

USER SKILL LEVEL: %s

DETAILED Q&A SESSION:
%s
%s
Create a refined objective that:
1. Incorporates all key insights from user answers and file context
2. Is significantly more specific and actionable than the original
3. Includes how uploaded files should be integrated into the solution
4. Addresses technical constraints, preferences, and success criteria
5. Is structured appropriately for a %s level implementation

REFINED OBJECTIVE:`

// RefineObjective folds answered follow-up questions and file context into
// a single refined objective paragraph. Only indices with non-blank answers
// contribute Q/A pairs; if none exist the original objective is returned
// without a gateway call. Empty results and gateway failures also fall back
// to the original objective.
func RefineObjective(ctx context.Context, gen api.Generator, objective string, questions []string, answers map[int]string, skill models.SkillLevel, files []models.File) string {
	var pairs []string
	indices := make([]int, 0, len(answers))
	for i := range answers {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		answer := strings.TrimSpace(answers[i])
		if answer == "" || i < 0 || i >= len(questions) {
			continue
		}
		pairs = append(pairs, fmt.Sprintf("Q: %s\nA: %s", questions[i], answer))
	}

	if len(pairs) == 0 {
		return objective
	}

	prompt := fmt.Sprintf(refinePrompt,
		objective, skill, strings.Join(pairs, "\n\n"), refineFileContext(files), skill)

	refined, err := gen.Generate(ctx, prompt, api.DefaultMaxTokens, api.DefaultTemperature)
	if err != nil || strings.TrimSpace(refined) == "" {
		return objective
	}
	return strings.TrimSpace(refined)
}

func refineFileContext(files []models.File) string {
	if len(files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nUPLOADED FILES CONTEXT:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "File: %s - %s\n", f.Filename, f.Excerpt(refineExcerptChars))
	}
	return b.String()
}
