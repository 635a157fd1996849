package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFixture writes content to a file under t.TempDir and returns its path.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		content  string
		wantDocs int
		wantID   string
	}{
		{
			"jsonl",
			"corpus.jsonl",
			`{"id": "j1", "body": "jsonl body"}`,
			1, "j1",
		},
		{
			"ndjson",
			"corpus.ndjson",
			`{"id": "n1", "body": "ndjson body"}`,
			1, "n1",
		},
		{
			"sgm defaults to sgml",
			"corpus.sgm",
			"<REUTERS NEWID=\"s1\">\n<BODY>sgml body</BODY>\n</REUTERS>",
			1, "s1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.file, tt.content)
			docs, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(docs) != tt.wantDocs {
				t.Fatalf("got %d documents, want %d", len(docs), tt.wantDocs)
			}
			if docs[0].ID != tt.wantID {
				t.Errorf("ID = %q, want %q", docs[0].ID, tt.wantID)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.sgm"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_ParseErrorNamesFile(t *testing.T) {
	path := writeFixture(t, "bad.jsonl", "{broken")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
}
