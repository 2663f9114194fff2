// Package ingest reads user-supplied files into session records: text
// extraction for prompt context, structured parses for tabular and JSON
// data, and the gateway-backed file-requirement analysis used at the
// results stage.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aaxonlabs/agentforge/pkg/models"
)

// ProcessFile reads the file at path into a models.File. Dispatch is by
// extension: CSV parses into rows, JSON into a tree, txt/md into raw text;
// undecodable content gets a binary placeholder. Read or parse failures
// are recorded in ExtractedText rather than returned, so one bad file
// never aborts a batch.
func ProcessFile(path string, questionIndex int) models.File {
	name := filepath.Base(path)
	file := models.File{
		Filename:      name,
		MIMEType:      mimeTypeFor(name),
		QuestionIndex: questionIndex,
	}

	f, err := os.Open(path)
	if err != nil {
		file.ExtractedText = fmt.Sprintf("Error processing file: %v", err)
		return file
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil {
		file.SizeBytes = info.Size()
	}

	data, err := io.ReadAll(io.LimitReader(f, 4<<20))
	if err != nil {
		file.ExtractedText = fmt.Sprintf("Error processing file: %v", err)
		return file
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		processCSV(&file, data)
	case ".json":
		processJSON(&file, data)
	case ".txt", ".md":
		file.ExtractedText = cap10k(string(data))
	default:
		if utf8.Valid(data) {
			file.ExtractedText = cap10k(string(data))
		} else {
			file.ExtractedText = fmt.Sprintf("Binary file: %s", name)
		}
	}
	return file
}

// processCSV parses the header plus rows into File.Rows and renders the
// raw text into ExtractedText. A parse failure leaves the raw text with an
// error note, matching the keep-going batch policy.
func processCSV(file *models.File, data []byte) {
	file.ExtractedText = cap10k(string(data))

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		file.ExtractedText = fmt.Sprintf("Error processing file: %v", err)
		return
	}
	if len(records) < 2 {
		return
	}
	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	file.Rows = rows
}

func processJSON(file *models.File, data []byte) {
	file.ExtractedText = cap10k(string(data))

	var tree any
	if err := json.Unmarshal(data, &tree); err == nil {
		file.Tree = tree
	}
}

// cap10k truncates extracted text to the persistence cap.
func cap10k(s string) string {
	return models.TruncateText(s, models.MaxExtractedChars)
}

func mimeTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".csv":
		return "text/csv"
	case ".txt", ".md":
		return "text/plain"
	case ".json":
		return "application/json"
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
