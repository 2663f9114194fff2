// Package skill classifies the technical sophistication of an objective so
// later stages can tune prompts and fallbacks to the user's level.
package skill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

const classifyMaxTokens = 300

const classifyPrompt = `Analyze this goal description to determine the user's technical skill level:

Goal: "%s"

Consider these factors:
1. Technical terminology used
2. Complexity of requirements
3. Specificity of implementation details
4. Expected sophistication of solution

Classify as:
- BEGINNER: Simple, non-technical language, general requests, minimal technical details
- INTERMEDIATE: Some technical aspects, specific functional needs, basic implementation details
- ADVANCED: Precise technical terms, complex requirements, detailed implementation specifics

Return your analysis in this exact JSON format:
{
    "skill_level": "beginner|intermediate|advanced",
    "reason": "detailed explanation of your classification"
}`

// fallbackReason is returned whenever classification cannot be completed.
const fallbackReason = "Unable to determine - defaulting to intermediate"

type classification struct {
	SkillLevel string `json:"skill_level"`
	Reason     string `json:"reason"`
}

// Classify asks the gateway to grade the objective's technical level and
// parses the JSON verdict. Gateway failure, malformed JSON, or an unknown
// tier all degrade to intermediate with a fixed reason; classification never
// returns an error.
func Classify(ctx context.Context, gen api.Generator, goal string) (models.SkillLevel, string) {
	response, err := gen.Generate(ctx, fmt.Sprintf(classifyPrompt, goal), classifyMaxTokens, api.DefaultTemperature)
	if err != nil {
		return models.SkillIntermediate, fallbackReason
	}

	var verdict classification
	if err := json.Unmarshal([]byte(extractJSON(response)), &verdict); err != nil {
		return models.SkillIntermediate, fallbackReason
	}

	level := models.SkillLevel(strings.ToLower(strings.TrimSpace(verdict.SkillLevel)))
	if !level.Valid() {
		return models.SkillIntermediate, fallbackReason
	}
	reason := strings.TrimSpace(verdict.Reason)
	if reason == "" {
		reason = fallbackReason
	}
	return level, reason
}

// extractJSON trims prose the model sometimes wraps around the JSON object,
// returning the outermost {...} span or the input unchanged.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}
