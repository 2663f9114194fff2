// Package decompose generates and edits the wizard's subtask list.
// All model interaction goes through the api.Generator gateway; every
// failure path degrades to a deterministic fallback so callers never see
// an error from this package.
package decompose

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

const (
	// minSubtasks is the floor below which a parsed decomposition is
	// rejected in favor of the domain fallback.
	minSubtasks = 3
	// maxSubtasks caps the subtask list length.
	maxSubtasks = 5

	// excerptChars is the per-file context cap when embedding uploads into
	// the decomposition prompt.
	excerptChars = 300
)

// Generate breaks an objective into 3-5 implementation steps. Uploaded
// files, if any, contribute excerpt context to the prompt. On transport
// failure, unparseable output, or fewer than three parsed items, the
// domain-keyword fallback list for the objective is returned instead.
func Generate(ctx context.Context, gen api.Generator, objective string, files []models.File) []string {
	prompt := fmt.Sprintf(subtaskPrompt, objective, fileContext(files))

	response, err := gen.Generate(ctx, prompt, 800, 0.2)
	if err != nil {
		return FallbackSubtasks(objective)
	}

	tasks := ParseNumberedList(response)
	var kept []string
	for _, task := range tasks {
		if len(task) > 10 {
			kept = append(kept, task)
		}
	}

	if len(kept) < minSubtasks {
		return FallbackSubtasks(objective)
	}
	if len(kept) > maxSubtasks {
		kept = kept[:maxSubtasks]
	}
	return kept
}

// fileContext renders uploaded files as a prompt block, one excerpt per
// file. Returns an empty string when there are no files.
func fileContext(files []models.File) string {
	if len(files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nUPLOADED FILES CONTEXT:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s: %s\n", f.Filename, f.Excerpt(excerptChars))
	}
	return b.String()
}

// FallbackSubtasks returns a domain-specific canned decomposition, selected
// by keyword match against the objective. Used whenever generation fails or
// produces too few items.
func FallbackSubtasks(objective string) []string {
	obj := strings.ToLower(objective)

	financial := []string{"invoice", "payment", "financial", "revenue", "vendor"}
	for _, term := range financial {
		if strings.Contains(obj, term) {
			return []string{
				"Analyze invoice processing requirements and data sources",
				"Design database schema for vendors, payments, and products",
				"Implement invoice parsing and data extraction logic",
				"Create reporting dashboard and analytics features",
				"Deploy system with automated workflows and notifications",
			}
		}
	}

	aiTerms := []string{"ai", "ml", "agent", "model"}
	for _, term := range aiTerms {
		if strings.Contains(obj, term) {
			return []string{
				"Define AI/ML requirements and data sources",
				"Design system architecture and agent workflow",
				"Implement core AI/ML processing logic",
				"Create user interface and interaction layer",
				"Deploy, test and optimize the system",
			}
		}
	}

	return []string{
		"Analyze project requirements and scope",
		"Design system architecture and data flow",
		"Implement core functionality and features",
		"Add testing, validation and error handling",
		"Deploy, document and optimize the system",
	}
}
