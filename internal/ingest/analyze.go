package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aaxonlabs/agentforge/internal/api"
	"github.com/aaxonlabs/agentforge/pkg/models"
)

const analyzeMaxTokens = 500

const analyzeWithFilesPrompt = `Read these files and write out some of the data from each given file. Do NOT provide any suggestions or advice.

User Requirements: %s

File Contents:
%s

Based on the file contents, extract and list the key data points found (one per line):`

const analyzeWithoutFilesPrompt = `Analyze these user requirements. Do NOT provide any suggestions or advice.

Simply read the files and write out some of the data from each given file.

Requirements: %s

Return ONLY a simple list of required files (one per line):`

// Analyze asks the gateway to summarize key data points from the uploaded
// files against the user's answers, one finding per line. Without files it
// instead lists the files the requirements imply. Gateway failure returns
// an empty list; the results stage treats that as "nothing to show".
func Analyze(ctx context.Context, gen api.Generator, answers map[string]string, files []models.File) []string {
	reqs, err := json.MarshalIndent(answers, "", "  ")
	if err != nil {
		reqs = []byte("{}")
	}

	var prompt string
	if len(files) > 0 {
		prompt = fmt.Sprintf(analyzeWithFilesPrompt, reqs, fileContents(files))
	} else {
		prompt = fmt.Sprintf(analyzeWithoutFilesPrompt, reqs)
	}

	response, err := gen.Generate(ctx, prompt, analyzeMaxTokens, api.DefaultTemperature)
	if err != nil {
		return nil
	}

	var findings []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "Requirements:") || strings.HasPrefix(line, "User Requirements:") {
			continue
		}
		findings = append(findings, line)
	}
	return findings
}

func fileContents(files []models.File) string {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "\n**File: %s**\nContent:\n%s\n", f.Filename, f.ExtractedText)
	}
	return b.String()
}
