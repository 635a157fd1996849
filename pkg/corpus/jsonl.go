package corpus

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single JSONL line. News bodies run a few KB;
// anything near this limit is a malformed file, not a document.
const maxLineBytes = 1 << 20

// ReadJSONL parses a corpus with one JSON document object per line:
// {"id": "...", "title": "...", "body": "..."}. Blank lines are skipped.
// Unlike the SGML dumps, JSONL files are machine-written, so a line that
// fails to parse is an error rather than a record to drop. A missing id
// defaults to the 0-based document position; an empty body is kept so the
// pipeline can report the document as skipped.
func ReadJSONL(r io.Reader) ([]Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var docs []Document
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			Body  string `json:"body"`
		}
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if rec.ID == "" {
			rec.ID = strconv.Itoa(len(docs))
		}
		docs = append(docs, Document{ID: rec.ID, Title: rec.Title, Body: rec.Body})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	return docs, nil
}
