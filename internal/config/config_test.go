package config

import (
	"os"
	"path/filepath"
	"testing"

	"thematicmap/internal/datalayer"
	"thematicmap/internal/drill"
)

var keys = []string{
	"THEMATICMAP_BASEMAP",
	"THEMATICMAP_DRILL_MODE",
	"THEMATICMAP_SELECTION_MODE",
	"THEMATICMAP_AREAS",
	"THEMATICMAP_DATA",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Basemap != "usa" || cfg.DrillMode != drill.ModeMultiple || cfg.SelectionMode != datalayer.SelectMultiple {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	src := "THEMATICMAP_BASEMAP=world\nTHEMATICMAP_DRILL_MODE=single\nTHEMATICMAP_DATA=pop.csv\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("THEMATICMAP_SELECTION_MODE", "none")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Basemap != "world" || cfg.DrillMode != drill.ModeSingle || cfg.DataFile != "pop.csv" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SelectionMode != datalayer.SelectNone {
		t.Errorf("SelectionMode = %v", cfg.SelectionMode)
	}
}

func TestEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("THEMATICMAP_BASEMAP=world\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("THEMATICMAP_BASEMAP", "europe")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Basemap != "europe" {
		t.Errorf("Basemap = %q", cfg.Basemap)
	}
}

func TestBadModes(t *testing.T) {
	for _, k := range []string{"THEMATICMAP_DRILL_MODE", "THEMATICMAP_SELECTION_MODE"} {
		t.Run(k, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(k, "sideways")
			if _, err := Load(""); err == nil {
				t.Errorf("Load accepted %s=sideways", k)
			}
		})
	}
}
