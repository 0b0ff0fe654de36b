package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DeviceMode != "none" || cfg.BrokenithmPort != 1606 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("deviceMode: tasoller-two\nledMode: attract\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DeviceMode != "tasoller-two" {
		t.Errorf("deviceMode = %q, want tasoller-two", cfg.DeviceMode)
	}
	if cfg.LEDMode != "attract" {
		t.Errorf("ledMode = %q, want attract", cfg.LEDMode)
	}
	if cfg.BrokenithmPort != 1606 {
		t.Errorf("brokenithmPort = %d, want default 1606 preserved", cfg.BrokenithmPort)
	}
}

func TestSaveOverridesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.DeviceMode = "yuancon"
	cfg.DivaBrightness = 40

	if err := SaveOverrides(path, cfg); err != nil {
		t.Fatalf("SaveOverrides: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DeviceMode != "yuancon" || loaded.DivaBrightness != 40 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.OutputPolling != Default().OutputPolling {
		t.Errorf("unchanged field drifted: %+v", loaded)
	}
}

func TestDiffOnlyIncludesChangedFields(t *testing.T) {
	def := Default()
	cfg := Default()
	cfg.LEDFaster = true

	d := diff(def, cfg)
	if len(d) != 1 {
		t.Fatalf("diff = %+v, want exactly one changed field", d)
	}
	if v, ok := d["ledFaster"]; !ok || v != true {
		t.Errorf("diff[ledFaster] = %v, want true", v)
	}
}
