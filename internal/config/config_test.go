package config

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		t.Error("viewport should have a positive size")
	}
	if cfg.Orbit.Friction != 0.95 {
		t.Errorf("expected friction 0.95, got %f", cfg.Orbit.Friction)
	}
	if cfg.Render.RulerInterval != 500 {
		t.Errorf("expected ruler interval 500, got %f", cfg.Render.RulerInterval)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wellview.yaml")
	cfg := DefaultConfig()
	cfg.Viewport.Width = 1234
	cfg.Render.Colors = map[string]string{"casing": "#ff0000"}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Viewport.Width != 1234 {
		t.Errorf("expected width 1234, got %f", got.Viewport.Width)
	}
	if got.Render.Colors["casing"] != "#ff0000" {
		t.Errorf("expected casing override, got %v", got.Render.Colors)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("compact")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Viewport.Width != 400 {
		t.Errorf("expected width 400, got %f", cfg.Viewport.Width)
	}
	if cfg.Render.ShowStructures {
		t.Error("compact preset should hide structures")
	}

	// Presets are built fresh each time.
	cfg.Viewport.Width = 1
	if GetPreset("compact").Viewport.Width != 400 {
		t.Error("preset mutated through a returned config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != 3 {
		t.Fatalf("expected 3 presets, got %v", presets)
	}
	if presets[0] != "compact" {
		t.Errorf("expected sorted names, got %v", presets)
	}
}

func TestBuilder(t *testing.T) {
	cfg := GetPreset("survey-qc")
	cfg.Render.Colors = map[string]string{"packer": "#00ff00"}

	b, err := cfg.Builder()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	if b.Style.ShowTrees {
		t.Error("survey-qc should hide trees")
	}
	if b.Style.RulerInterval != 100 {
		t.Errorf("expected ruler interval 100, got %f", b.Style.RulerInterval)
	}
	if got := b.Palette.Components[field.Packer].Main.Hex(); got != "#00ff00" {
		t.Errorf("expected packer override, got %s", got)
	}
	if _, ok := b.Shader.(render.CylinderShader); !ok {
		t.Errorf("expected cylinder shader, got %T", b.Shader)
	}
}

func TestBuilderTheme(t *testing.T) {
	b, err := GetPreset("presentation").Builder()
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	if got := b.Palette.Background.Hex(); got != "#ffffff" {
		t.Errorf("expected paper background, got %s", got)
	}

	cfg := DefaultConfig()
	cfg.Render.Theme = "neon"
	if _, err := cfg.Builder(); err == nil {
		t.Error("expected error for unknown theme")
	}
}

func TestBuilderBadColor(t *testing.T) {
	tests := []map[string]string{
		{"casing": "not-a-color"},
		{"wellhead": "#ffffff"},
	}
	for _, colors := range tests {
		cfg := DefaultConfig()
		cfg.Render.Colors = colors
		if _, err := cfg.Builder(); err == nil {
			t.Errorf("%v: expected error", colors)
		}
	}
}

func TestNewViewport(t *testing.T) {
	cfg := GetPreset("compact")
	vp := cfg.NewViewport()
	if vp.Width != 400 || vp.Height != 300 {
		t.Errorf("expected 400x300, got %fx%f", vp.Width, vp.Height)
	}

	cfg.Viewport = ViewportConfig{}
	vp = cfg.NewViewport()
	if vp.Width != DefaultWidth {
		t.Errorf("expected default width, got %f", vp.Width)
	}
}
