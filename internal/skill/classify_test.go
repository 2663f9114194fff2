package skill

import (
	"context"
	"errors"
	"testing"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

type stubGenerator struct {
	response string
	err      error
	calls    int
}

func (s *stubGenerator) Generate(context.Context, string, int64, float64) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestClassifyParsesVerdict(t *testing.T) {
	tests := []struct {
		name       string
		response   string
		wantLevel  models.SkillLevel
		wantReason string
	}{
		{
			name:       "advanced",
			response:   `{"skill_level": "advanced", "reason": "precise technical terminology"}`,
			wantLevel:  models.SkillAdvanced,
			wantReason: "precise technical terminology",
		},
		{
			name:       "beginner with surrounding prose",
			response:   "Here is my analysis:\n{\"skill_level\": \"beginner\", \"reason\": \"plain language\"}\nHope that helps.",
			wantLevel:  models.SkillBeginner,
			wantReason: "plain language",
		},
		{
			name:       "uppercase tier normalized",
			response:   `{"skill_level": "INTERMEDIATE", "reason": "mixed signals"}`,
			wantLevel:  models.SkillIntermediate,
			wantReason: "mixed signals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{response: tt.response}
			level, reason := Classify(context.Background(), gen, "build a distributed cache")
			if level != tt.wantLevel {
				t.Errorf("level = %q, want %q", level, tt.wantLevel)
			}
			if reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestClassifyFallsBackToIntermediate(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{"gateway error", &stubGenerator{err: errors.New("api unavailable")}},
		{"malformed json", &stubGenerator{response: "definitely intermediate, trust me"}},
		{"empty response", &stubGenerator{response: ""}},
		{"unknown tier", &stubGenerator{response: `{"skill_level": "expert", "reason": "very skilled"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, reason := Classify(context.Background(), tt.gen, "automate my spreadsheets")
			if level != models.SkillIntermediate {
				t.Errorf("level = %q, want intermediate", level)
			}
			if reason != fallbackReason {
				t.Errorf("reason = %q, want %q", reason, fallbackReason)
			}
		})
	}
}

func TestClassifyBlankReasonGetsFallbackText(t *testing.T) {
	gen := &stubGenerator{response: `{"skill_level": "advanced", "reason": "  "}`}
	level, reason := Classify(context.Background(), gen, "goal")
	if level != models.SkillAdvanced {
		t.Errorf("level = %q, want advanced", level)
	}
	if reason != fallbackReason {
		t.Errorf("reason = %q, want fallback text", reason)
	}
}
