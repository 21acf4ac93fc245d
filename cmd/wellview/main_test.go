package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/san-kum/wellview/internal/config"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLevel, "")
	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDBPath, "")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "")
	return cmd
}

func TestResolveConfigPresetAndFlags(t *testing.T) {
	defer func() { preset, configFile = "", "" }()

	cmd := testCmd()
	preset = "compact"
	if err := cmd.Flags().Set("width", "640"); err != nil {
		t.Fatal(err)
	}

	c, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Viewport.Width != 640 {
		t.Errorf("expected flag to override width, got %f", c.Viewport.Width)
	}
	if c.Viewport.Height != 300 {
		t.Errorf("expected preset height 300, got %f", c.Viewport.Height)
	}
}

func TestResolveConfigFile(t *testing.T) {
	defer func() { preset, configFile = "", "" }()

	path := filepath.Join(t.TempDir(), "wellview.yaml")
	file := config.DefaultConfig()
	file.Storage.Path = "from-file.db"
	file.Viewport.Width = 1000
	if err := config.Save(path, file); err != nil {
		t.Fatal(err)
	}

	cmd := testCmd()
	configFile = path
	c, err := resolveConfig(cmd)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.Storage.Path != "from-file.db" || c.Viewport.Width != 1000 {
		t.Errorf("expected file values, got %+v", c)
	}

	cmd.Flags().Set("db", "flag.db")
	c, _ = resolveConfig(cmd)
	if c.Storage.Path != "flag.db" {
		t.Errorf("expected flag to override file, got %s", c.Storage.Path)
	}
}

func TestResolveConfigUnknownPreset(t *testing.T) {
	defer func() { preset = "" }()
	preset = "nope"
	if _, err := resolveConfig(testCmd()); err == nil || !strings.Contains(err.Error(), "compact") {
		t.Errorf("expected unknown preset error listing presets, got %v", err)
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	if err := setupLogger(&buf, "warn"); err != nil {
		t.Fatal(err)
	}
	defer setupLogger(os.Stderr, "info")

	if err := setupLogger(&buf, "loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoadFieldSample(t *testing.T) {
	defer func() { sampleName = "north-sea" }()
	sampleName = "cluster"
	f, path, err := loadField(nil)
	if err != nil {
		t.Fatal(err)
	}
	if path != "" || len(f.Wells) != 3 {
		t.Errorf("expected cluster sample, got %d wells from %q", len(f.Wells), path)
	}
}
