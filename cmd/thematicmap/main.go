package main

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"thematicmap/internal/basemap"
	"thematicmap/internal/config"
	"thematicmap/internal/logger"
	"thematicmap/internal/tui"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	if len(os.Args) > 1 {
		cfg.DataFile = os.Args[1]
	}
	lg, err := logger.Setup()
	if err != nil {
		log.Printf("log file: %v", err)
	}
	defer logger.Close()

	catalog, err := basemap.Builtin()
	if err != nil {
		log.Fatal(err)
	}
	lg.Info("startup", "basemap", cfg.Basemap, "drill_mode", cfg.DrillMode.String(), "data", cfg.DataFile)

	m := tui.New(cfg, catalog)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		logger.Close()
		log.Fatal(err)
	}
}
