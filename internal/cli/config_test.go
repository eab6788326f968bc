package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	errs "github.com/matzehuels/hassetower/pkg/errors"
	"github.com/matzehuels/hassetower/pkg/pipeline"
	"github.com/matzehuels/hassetower/pkg/render"
)

// isolateConfig points the user config at an empty directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Formats) != 1 || cfg.Formats[0] != "svg" {
		t.Errorf("Formats = %v, want [svg]", cfg.Formats)
	}
	if cfg.CacheTTL != pipeline.DefaultArtifactTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, pipeline.DefaultArtifactTTL)
	}
	if cfg.Listen != defaultListen {
		t.Errorf("Listen = %q, want %q", cfg.Listen, defaultListen)
	}
}

func TestLoadConfigPrecedence(t *testing.T) {
	home := isolateConfig(t)
	writeFile(t, filepath.Join(home, "hasse", "config.yaml"), `
formats: [png]
detailed: true
cache_ttl: 1h
listen: ":9000"
`)
	project := filepath.Join(t.TempDir(), "project.yaml")
	writeFile(t, project, `
formats: [dot, json]
cache_ttl: 2h
`)
	t.Setenv("HASSE_LISTEN", ":9999")

	cfg, err := LoadConfig(project)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if got := cfg.formats(); len(got) != 2 || got[0] != render.DOT || got[1] != render.JSON {
		t.Errorf("formats = %v, want project value [dot json]", got)
	}
	if !cfg.Detailed {
		t.Error("Detailed from user config was lost")
	}
	if cfg.CacheTTL != 2*time.Hour {
		t.Errorf("CacheTTL = %v, want project value 2h", cfg.CacheTTL)
	}
	if cfg.Listen != ":9999" {
		t.Errorf("Listen = %q, want env value", cfg.Listen)
	}
}

func TestLoadConfigEnvFormats(t *testing.T) {
	isolateConfig(t)
	t.Setenv("HASSE_FORMATS", "dot,png")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[0] != "dot" || cfg.Formats[1] != "png" {
		t.Errorf("Formats = %v, want [dot png]", cfg.Formats)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	isolateConfig(t)

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("missing explicit config: error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "formats: [pdf]\n")
	if _, err := LoadConfig(bad); !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("bad format: error = %v, want INVALID_FORMAT", err)
	}
}
