// ABOUTME: Tests for pulse configuration management.
// ABOUTME: Covers defaults, backend selection, analysis tuning, and path expansion.
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pulsekit/pulse/internal/analysis"
)

func TestGetBackendDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetBackend(); got != "sqlite" {
		t.Errorf("GetBackend() = %q, want %q", got, "sqlite")
	}
}

func TestGetBackendExplicit(t *testing.T) {
	cfg := &Config{Backend: "markdown"}
	if got := cfg.GetBackend(); got != "markdown" {
		t.Errorf("GetBackend() = %q, want %q", got, "markdown")
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetDataDir(); got == "" {
		t.Error("GetDataDir() returned empty string")
	}
}

func TestGetDataDirExplicit(t *testing.T) {
	cfg := &Config{DataDir: "/tmp/pulse-test"}
	if got := cfg.GetDataDir(); got != "/tmp/pulse-test" {
		t.Errorf("GetDataDir() = %q, want %q", got, "/tmp/pulse-test")
	}
}

func TestGetCorrelationCutoffDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetCorrelationCutoff(); got != analysis.DefaultCutoff {
		t.Errorf("GetCorrelationCutoff() = %v, want %v", got, analysis.DefaultCutoff)
	}
}

func TestGetCorrelationCutoffExplicit(t *testing.T) {
	cfg := &Config{CorrelationCutoff: analysis.StrictCutoff}
	if got := cfg.GetCorrelationCutoff(); got != analysis.StrictCutoff {
		t.Errorf("GetCorrelationCutoff() = %v, want %v", got, analysis.StrictCutoff)
	}
}

func TestGetAnalysisWindowDaysDefault(t *testing.T) {
	cfg := &Config{}
	if got := cfg.GetAnalysisWindowDays(); got != 30 {
		t.Errorf("GetAnalysisWindowDays() = %d, want 30", got)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(\"~\") = %q, want %q", got, home)
	}

	got := ExpandPath("~/data/pulse")
	want := filepath.Join(home, "data/pulse")
	if got != want {
		t.Errorf("ExpandPath(\"~/data/pulse\") = %q, want %q", got, want)
	}
}

func TestExpandPathPassthrough(t *testing.T) {
	cases := []string{"", "/tmp/foo", "data/pulse"}
	for _, c := range cases {
		if got := ExpandPath(c); got != c {
			t.Errorf("ExpandPath(%q) = %q, want unchanged", c, got)
		}
	}
}

func TestOpenStorageUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "bogus"}
	if _, err := cfg.OpenStorage(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestOpenStorageSQLite(t *testing.T) {
	cfg := &Config{Backend: "sqlite", DataDir: t.TempDir()}
	repo, err := cfg.OpenStorage()
	if err != nil {
		t.Fatalf("OpenStorage failed: %v", err)
	}
	defer repo.Close()
}

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{Backend: "markdown", CorrelationCutoff: 0.3, AnalysisWindowDays: 60}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend != "markdown" {
		t.Errorf("Backend = %q, want markdown", loaded.Backend)
	}
	if loaded.CorrelationCutoff != 0.3 {
		t.Errorf("CorrelationCutoff = %v, want 0.3", loaded.CorrelationCutoff)
	}
	if loaded.AnalysisWindowDays != 60 {
		t.Errorf("AnalysisWindowDays = %d, want 60", loaded.AnalysisWindowDays)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GetBackend() != "sqlite" {
		t.Errorf("expected default backend, got %q", cfg.GetBackend())
	}
}
