package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mmr.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q): %v", path, err)
		}
		if cfg != Default() {
			t.Fatalf("Load(%q) = %+v, want defaults", path, cfg)
		}
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, "engine: ccitt\nformat: qoi\nmax_pixels: 4096\nverbose: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{Engine: "ccitt", Format: "qoi", MaxPixels: 4096, Verbose: true}
	if cfg != want {
		t.Fatalf("Load = %+v, want %+v", cfg, want)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "engine: g4\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine != "g4" || cfg.Format != "png" || cfg.MaxPixels != Default().MaxPixels {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "colour: blue\n",
		"bad engine":     "engine: jbig2\n",
		"bad format":     "format: tiff\n",
		"negative limit": "max_pixels: -1\n",
		"bad yaml":       "engine: [g4\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}
