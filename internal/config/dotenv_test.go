package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# local overrides
RECOMMENDER_API_URL=http://localhost:9991
RESPONSE_LIMIT = "6"
CACHE_TTL='2m'
malformed line without equals

`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// t.Setenv registers the restore; the empty value lets the file win.
	t.Setenv("RECOMMENDER_API_URL", "")
	t.Setenv("RESPONSE_LIMIT", "")
	t.Setenv("CACHE_TTL", "")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("RECOMMENDER_API_URL"); got != "http://localhost:9991" {
		t.Errorf("RECOMMENDER_API_URL = %q", got)
	}
	if got := os.Getenv("RESPONSE_LIMIT"); got != "6" {
		t.Errorf("expected quotes stripped, got %q", got)
	}
	if got := os.Getenv("CACHE_TTL"); got != "2m" {
		t.Errorf("expected single quotes stripped, got %q", got)
	}
}

func TestLoadDotEnv_EnvTakesPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "8081")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("PORT"); got != "8081" {
		t.Errorf("existing env var was overridden: %q", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
