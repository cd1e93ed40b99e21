// Package config reads viewer settings from the environment, after loading
// an optional .env file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"thematicmap/internal/datalayer"
	"thematicmap/internal/drill"
)

type Config struct {
	Basemap       string
	DrillMode     drill.Mode
	SelectionMode datalayer.SelectionMode
	AreasFile     string // GeoJSON areas registered on top of the builtin catalog
	DataFile      string // CSV or KML data layer
}

// Load reads envFile (missing is fine) and then the environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	}
	cfg := Config{
		Basemap:   getenv("THEMATICMAP_BASEMAP", "usa"),
		AreasFile: os.Getenv("THEMATICMAP_AREAS"),
		DataFile:  os.Getenv("THEMATICMAP_DATA"),
	}
	var err error
	if cfg.DrillMode, err = drill.ParseMode(os.Getenv("THEMATICMAP_DRILL_MODE")); err != nil {
		return cfg, fmt.Errorf("THEMATICMAP_DRILL_MODE: %w", err)
	}
	if cfg.SelectionMode, err = datalayer.ParseSelectionMode(os.Getenv("THEMATICMAP_SELECTION_MODE")); err != nil {
		return cfg, fmt.Errorf("THEMATICMAP_SELECTION_MODE: %w", err)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
