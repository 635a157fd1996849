// Package corpus loads news-style document collections from disk. Two
// formats are supported: SGML record files in the style of the classic
// newswire corpora, and JSONL with one document object per line.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Document is one retained corpus entry. ID is stable for the run and
// unique within the corpus; Title may be empty. Body is the raw text
// handed to the tokenizer.
type Document struct {
	ID    string
	Title string
	Body  string
}

// Load reads the corpus file at path, dispatching on extension:
// .jsonl and .ndjson parse as JSONL, everything else as SGML records.
func Load(path string) ([]Document, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from the invoking user
	if err != nil {
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var docs []Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		docs, err = ReadJSONL(f)
	default:
		docs, err = ReadSGML(f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse corpus %s: %w", path, err)
	}
	return docs, nil
}
