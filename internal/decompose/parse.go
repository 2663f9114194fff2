package decompose

import (
	"regexp"
	"strings"
)

// numberedItem matches one line of a 1-based numbered list response.
var numberedItem = regexp.MustCompile(`^\d+\.\s+`)

// ParseNumberedList extracts items from a model response formatted as a
// numbered list. Lines that do not match the "N. text" shape are ignored,
// as are items that are blank after the numeric prefix is stripped.
func ParseNumberedList(response string) []string {
	var items []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if !numberedItem.MatchString(line) {
			continue
		}
		item := strings.TrimSpace(numberedItem.ReplaceAllString(line, ""))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
