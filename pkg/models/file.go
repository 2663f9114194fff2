package models

import "unicode/utf8"

// MaxExtractedChars is the content-length cap applied to extracted file
// text before it is stored or persisted.
const MaxExtractedChars = 10000

// TruncateText cuts s to at most n bytes without splitting a UTF-8 rune:
// the cut point backs up to the nearest rune boundary.
func TruncateText(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// File represents an uploaded artifact attached to a session.
type File struct {
	// Filename is the original name of the uploaded file.
	Filename string `json:"filename"`
	// MIMEType is the declared content type of the upload.
	MIMEType string `json:"file_type"`
	// SizeBytes is the size of the upload in bytes.
	SizeBytes int64 `json:"file_size"`
	// ExtractedText is the textual content, capped at MaxExtractedChars.
	ExtractedText string `json:"content"`
	// QuestionIndex is the clarifying question this upload is attached to.
	// Negative for session-level uploads with no question association.
	QuestionIndex int `json:"question_index"`
	// Rows holds parsed records for tabular sources (CSV).
	Rows []map[string]string `json:"processed_rows,omitempty"`
	// Tree holds the parsed document for JSON sources.
	Tree any `json:"processed_tree,omitempty"`
}

// Excerpt returns the first n characters of the extracted text, used when
// embedding file context into prompts.
func (f File) Excerpt(n int) string {
	return TruncateText(f.ExtractedText, n)
}
