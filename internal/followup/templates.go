package followup

import "github.com/aaxonlabs/agentforge/pkg/models"

// questionTemplates maps each skill tier to the instruction block injected
// into the question-generation prompt. Lookup falls back to intermediate
// for unknown tiers via models.ParseSkillLevel.
var questionTemplates = map[models.SkillLevel]string{
	models.SkillBeginner: "Ask simple, non-technical questions focused on:\n" +
		"- What the system should do in plain language\n" +
		"- Basic inputs and expected outputs\n" +
		"- Simple examples of desired behavior\n" +
		"Avoid technical jargon and focus on user goals",
	models.SkillIntermediate: "Ask balanced questions that cover:\n" +
		"- Functional requirements\n" +
		"- Basic technical considerations\n" +
		"- Expected behavior in different scenarios\n" +
		"- Simple validation rules\n" +
		"Use some technical terms but explain when needed",
	models.SkillAdvanced: "Ask detailed technical questions about:\n" +
		"- Specific implementation requirements\n" +
		"- Technical constraints and edge cases\n" +
		"- Performance considerations\n" +
		"- Integration requirements\n" +
		"- Advanced error handling\n" +
		"Use precise technical terminology",
}

// defaultQuestions holds the per-tier fallback question lists. Each list
// has exactly models.FollowupQuestionCount entries; they pad short
// generations and replace failed ones wholesale.
var defaultQuestions = map[models.SkillLevel][]string{
	models.SkillBeginner: {
		"What is the primary use case or problem you're trying to solve?",
		"Who will be using this system and how?",
		"What should the system do when it works correctly?",
		"Do you have any constraints in terms of time, resources, or environment?",
		"How will you measure success for this project?",
	},
	models.SkillIntermediate: {
		"What are the core functional requirements and success criteria?",
		"What technologies, frameworks, or architectural patterns do you prefer?",
		"What are the main constraints, limitations, or non-functional requirements?",
		"Who are the target users and what are their key needs?",
		"What performance, scalability, or integration requirements exist?",
	},
	models.SkillAdvanced: {
		"What are the detailed technical specifications and architectural requirements?",
		"What design patterns, frameworks, and implementation constraints should be followed?",
		"What are the specific performance, security, compliance, and scalability requirements?",
		"How should monitoring, logging, error handling, and deployment be implemented?",
		"What are the integration points, API requirements, and data flow specifications?",
	},
}

// templateFor returns the question-generation instruction block for a tier.
func templateFor(skill models.SkillLevel) string {
	return questionTemplates[models.ParseSkillLevel(string(skill))]
}

// DefaultQuestions returns the canned question list for a tier. Unknown
// tiers map to intermediate. The returned slice is a copy.
func DefaultQuestions(skill models.SkillLevel) []string {
	src := defaultQuestions[models.ParseSkillLevel(string(skill))]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
