package followup

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

func TestRefineObjectiveNoAnswersSkipsGateway(t *testing.T) {
	gen := &stubGenerator{response: "should never be used"}
	questions := DefaultQuestions(models.SkillIntermediate)

	for _, answers := range []map[int]string{
		nil,
		{},
		{0: "", 1: "   ", 2: "\t\n"},
	} {
		got := RefineObjective(context.Background(), gen, "original objective", questions, answers, models.SkillIntermediate, nil)
		if got != "original objective" {
			t.Errorf("answers %v: got %q, want original objective back", answers, got)
		}
	}
	if gen.calls != 0 {
		t.Errorf("gateway called %d times with no usable answers, want 0", gen.calls)
	}
}

func TestRefineObjectiveIncorporatesAnswers(t *testing.T) {
	gen := &stubGenerator{response: "  Build a nightly CSV-driven invoice pipeline.  "}
	questions := []string{"What data sources?", "How often?", "What output?"}
	answers := map[int]string{0: "a CSV export", 2: "a summary email"}

	got := RefineObjective(context.Background(), gen, "automate invoices", questions, answers, models.SkillAdvanced, nil)
	if got != "Build a nightly CSV-driven invoice pipeline." {
		t.Errorf("got %q, want trimmed gateway response", got)
	}
	if gen.calls != 1 {
		t.Fatalf("gateway called %d times, want 1", gen.calls)
	}

	prompt := gen.prompts[0]
	for _, want := range []string{
		"Q: What data sources?\nA: a CSV export",
		"Q: What output?\nA: a summary email",
		"automate invoices",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if strings.Contains(prompt, "How often?") {
		t.Error("prompt includes question with blank answer")
	}
}

func TestRefineObjectiveGatewayFailure(t *testing.T) {
	questions := []string{"What data sources?"}
	answers := map[int]string{0: "a database"}

	for name, gen := range map[string]*stubGenerator{
		"error":    {err: errors.New("api unavailable")},
		"empty":    {response: ""},
		"whitespace": {response: "   \n"},
	} {
		got := RefineObjective(context.Background(), gen, "automate reports", questions, answers, models.SkillBeginner, nil)
		if got != "automate reports" {
			t.Errorf("%s: got %q, want original objective", name, got)
		}
	}
}

func TestRefineObjectiveIgnoresOutOfRangeAnswers(t *testing.T) {
	gen := &stubGenerator{response: "refined"}
	questions := []string{"Only question?"}
	answers := map[int]string{-1: "stray", 5: "also stray"}

	got := RefineObjective(context.Background(), gen, "original", questions, answers, models.SkillIntermediate, nil)
	if got != "original" {
		t.Errorf("got %q, want original objective", got)
	}
	if gen.calls != 0 {
		t.Errorf("gateway called %d times for out-of-range answers, want 0", gen.calls)
	}
}

func TestRefineObjectiveFileContext(t *testing.T) {
	gen := &stubGenerator{response: "refined with files"}
	files := []models.File{{Filename: "data.json", ExtractedText: `{"rows": 10}`}}

	RefineObjective(context.Background(), gen, "parse data", []string{"Q?"}, map[int]string{0: "yes"}, models.SkillIntermediate, files)
	if gen.calls != 1 {
		t.Fatalf("gateway called %d times, want 1", gen.calls)
	}
	if !strings.Contains(gen.prompts[0], "File: data.json") {
		t.Errorf("prompt missing file context: %q", gen.prompts[0])
	}
}
