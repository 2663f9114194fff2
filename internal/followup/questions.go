// Package followup generates clarifying questions for an objective and
// folds the user's answers back into a refined objective.
package followup

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/internal/decompose"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

const (
	// minQuestionLen discards parsed questions at or below this length.
	minQuestionLen = 10
	// excerptChars is the per-file context cap for question prompts.
	excerptChars = 200
)

const questionsPrompt = `Based on this user objective: "%s"

User skill level: %s
%s
%s

Generate EXACTLY 5 thoughtful follow-up questions that consider both the objective and any uploaded files. The questions should:

1. **Clarify Scope**: What specific aspects or boundaries should be considered?
2. **Understand Context**: What environment, constraints, or requirements exist?
3. **File Integration**: How should the uploaded files be used in the solution?
4. **Define Success**: How will success be measured or what is the desired outcome?
5. **Technical Requirements**: What technologies, approaches, or styles are preferred?

Format your response as exactly 5 numbered questions:

1. [Question 1]
2. [Question 2]
3. [Question 3]
4. [Question 4]
5. [Question 5]

Make each question specific, actionable, and directly relevant to achieving the objective with the available data.`

// GenerateQuestions produces exactly models.FollowupQuestionCount clarifying
// questions for the objective, tuned to the skill tier and aware of any
// uploaded file excerpts. Parsed questions shorter than minQuestionLen are
// discarded; questions missing a trailing "?" get one appended. Short
// generations are padded from the tier's default list, and gateway failure
// returns the default list unmodified.
func GenerateQuestions(ctx context.Context, gen api.Generator, objective string, skill models.SkillLevel, files []models.File) []string {
	prompt := fmt.Sprintf(questionsPrompt, objective, skill, fileContext(files), templateFor(skill))

	response, err := gen.Generate(ctx, prompt, api.DefaultMaxTokens, api.DefaultTemperature)
	if err != nil {
		return DefaultQuestions(skill)
	}

	var questions []string
	for _, item := range decompose.ParseNumberedList(response) {
		if len(item) <= minQuestionLen {
			continue
		}
		if !strings.HasSuffix(item, "?") {
			item += "?"
		}
		questions = append(questions, item)
	}

	if len(questions) < models.FollowupQuestionCount {
		fallback := DefaultQuestions(skill)
		questions = append(questions, fallback[len(questions):]...)
	}
	return questions[:models.FollowupQuestionCount]
}

// fileContext renders file excerpts as a prompt block, or an empty string
// when there are no files.
func fileContext(files []models.File) string {
	if len(files) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nUPLOADED FILES:\n")
	for _, f := range files {
		fmt.Fprintf(&b, "- %s (%s): %s\n", f.Filename, f.MIMEType, f.Excerpt(excerptChars))
	}
	return b.String()
}
