package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfig writes a TOML config fixture and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corral.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	path := writeConfig(t, `corpus = "/data/reut2-000.sgm"
k = 6
seed = 7
max_iterations = 50
top_terms = 5
workers = 2
golden = "/data/labels.yaml"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Corpus != "/data/reut2-000.sgm" {
		t.Errorf("Corpus = %q, want %q", cfg.Corpus, "/data/reut2-000.sgm")
	}
	if cfg.K != 6 {
		t.Errorf("K = %d, want 6", cfg.K)
	}
	if cfg.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.Seed)
	}
	if cfg.MaxIterations != 50 {
		t.Errorf("MaxIterations = %d, want 50", cfg.MaxIterations)
	}
	if cfg.TopTerms != 5 {
		t.Errorf("TopTerms = %d, want 5", cfg.TopTerms)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Workers)
	}
	if cfg.Golden != "/data/labels.yaml" {
		t.Errorf("Golden = %q, want %q", cfg.Golden, "/data/labels.yaml")
	}
}

func TestLoadConfig_EnvPath(t *testing.T) {
	path := writeConfig(t, "k = 3\n")
	t.Setenv("CORRAL_CONFIG", path)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.K != 3 {
		t.Errorf("K = %d, want 3", cfg.K)
	}
}

func TestLoadConfig_ExplicitFlagBeatsEnv(t *testing.T) {
	flagPath := writeConfig(t, "k = 9\n")
	envPath := writeConfig(t, "k = 3\n")
	t.Setenv("CORRAL_CONFIG", envPath)

	cfg, err := loadConfig(flagPath)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.K != 9 {
		t.Errorf("K = %d, want 9 (explicit path should win)", cfg.K)
	}
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadConfig_ZeroWhenAbsent(t *testing.T) {
	t.Setenv("CORRAL_CONFIG", "")
	t.Setenv("CORRAL_HOME", t.TempDir())

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("expected zero config when no file exists, got %+v", cfg)
	}
}

func TestLoadConfig_FallsBackToHomeConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CORRAL_CONFIG", "")
	t.Setenv("CORRAL_HOME", home)
	if err := os.WriteFile(filepath.Join(home, "config.toml"), []byte("k = 11\n"), 0o600); err != nil {
		t.Fatalf("write home config: %v", err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.K != 11 {
		t.Errorf("K = %d, want 11 from $CORRAL_HOME/config.toml", cfg.K)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "k = [broken\n")

	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("error = %q, want it to mention parse config", err)
	}
}
