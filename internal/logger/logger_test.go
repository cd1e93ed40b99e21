package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.log")
	t.Setenv("LOG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	l, err := Setup()
	if err != nil {
		t.Fatal(err)
	}
	defer Close()
	l.Info("hidden")
	l.Warn("drill_down", "layer", 1)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %s", out)
	}
	if !strings.Contains(out, `"msg":"drill_down"`) || !strings.Contains(out, `"layer":1`) {
		t.Errorf("log = %s", out)
	}
}

func TestSetupBadFile(t *testing.T) {
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "missing", "map.log"))
	l, err := Setup()
	if err == nil {
		t.Error("Setup succeeded with an unwritable LOG_FILE")
	}
	if l == nil || L() != l {
		t.Error("no fallback logger")
	}
}
