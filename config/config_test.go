package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}
	if cfg.World.Bound != 768 {
		t.Errorf("world bound = %v, want 768", cfg.World.Bound)
	}
	if cfg.Scent.GridSize != 32 {
		t.Errorf("scent grid size = %d, want 32", cfg.Scent.GridSize)
	}
	if cfg.Vision.PredatorFOV != 55 || cfg.Vision.HerbivoreFOV != 160 {
		t.Errorf("fov = %v/%v, want 55/160", cfg.Vision.PredatorFOV, cfg.Vision.HerbivoreFOV)
	}
	if cfg.Vision.Range != 80 || cfg.Vision.NightPenalty != 0.4 {
		t.Errorf("range/penalty = %v/%v", cfg.Vision.Range, cfg.Vision.NightPenalty)
	}
	if len(cfg.Derived.WaterSources32) == 0 {
		t.Error("no derived water sources")
	}
	if cfg.Derived.Bound32 != 768 {
		t.Errorf("derived bound = %v", cfg.Derived.Bound32)
	}
}

func TestLoadOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	body := []byte("world:\n  bound: 512.0\n  wind: [2.0, 0.0, 0.0]\nvision:\n  range: 40.0\n")
	if err := os.WriteFile(path, body, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load override: %v", err)
	}
	if cfg.World.Bound != 512 {
		t.Errorf("bound = %v, want 512", cfg.World.Bound)
	}
	if cfg.Vision.Range != 40 {
		t.Errorf("range = %v, want 40", cfg.Vision.Range)
	}
	if cfg.Derived.Wind32 != [3]float32{2, 0, 0} {
		t.Errorf("derived wind = %v", cfg.Derived.Wind32)
	}
	// Untouched sections keep defaults.
	if cfg.Scent.GridSize != 32 {
		t.Errorf("scent grid size = %d after partial override", cfg.Scent.GridSize)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.World.Bound != cfg.World.Bound || back.Scent.GridSize != cfg.Scent.GridSize {
		t.Error("round-tripped config diverged")
	}
}
