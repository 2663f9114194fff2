// Package codegen deterministically renders the collected session state
// into a runnable Python agent program, plus the template-only explanation
// document that accompanies it. Nothing in this package calls the gateway.
package codegen

import "strings"

// CandidateFiles scans the goal text and string-valued answers for tokens
// that look like filenames: whitespace-delimited, containing a ".", not
// starting with "<". Order of first appearance is preserved; duplicates
// are dropped.
func CandidateFiles(goal string, answers map[string]string) []string {
	var out []string
	seen := make(map[string]bool)

	collect := func(text string) {
		for _, tok := range strings.Fields(text) {
			if !strings.Contains(tok, ".") || strings.HasPrefix(tok, "<") {
				continue
			}
			if seen[tok] {
				continue
			}
			seen[tok] = true
			out = append(out, tok)
		}
	}

	collect(goal)
	for _, key := range sortedKeys(answers) {
		collect(answers[key])
	}
	return out
}
