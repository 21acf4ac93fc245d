package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wellview/internal/field"
	"github.com/san-kum/wellview/internal/render"
	"github.com/san-kum/wellview/internal/scene"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultShader  = "cylinder"
	DefaultAddr    = ":3000"
	DefaultDBPath  = "data/wellview.db"
	DefaultLevel   = "info"
	DefaultTimeout = 10
)

type Config struct {
	Viewport ViewportConfig    `yaml:"viewport"`
	Orbit    scene.OrbitConfig `yaml:"orbit"`
	Render   RenderConfig      `yaml:"render"`
	Server   ServerConfig      `yaml:"server"`
	Storage  StorageConfig     `yaml:"storage"`
	Log      LogConfig         `yaml:"log"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RenderConfig struct {
	RulerInterval  float64           `yaml:"ruler_interval"`
	ShowRuler      bool              `yaml:"show_ruler"`
	ShowTrees      bool              `yaml:"show_trees"`
	ShowStructures bool              `yaml:"show_structures"`
	Shader         string            `yaml:"shader"`
	Theme          string            `yaml:"theme"`
	Colors         map[string]string `yaml:"colors,omitempty"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

func DefaultConfig() *Config {
	return &Config{
		Viewport: ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
		Orbit:    scene.DefaultOrbitConfig(),
		Render: RenderConfig{
			RulerInterval:  render.DefaultRulerInterval,
			ShowRuler:      true,
			ShowTrees:      true,
			ShowStructures: true,
			Shader:         DefaultShader,
			Theme:          "default",
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			ReadTimeout:  DefaultTimeout,
			WriteTimeout: DefaultTimeout,
		},
		Storage: StorageConfig{Path: DefaultDBPath},
		Log:     LogConfig{Level: DefaultLevel},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Builder returns a render builder with the style, shader and color
// overrides of c applied.
func (c *Config) Builder() (*render.Builder, error) {
	b := render.NewBuilder()
	theme, err := render.GetTheme(c.Render.Theme)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	theme.Apply(&b.Palette)
	b.Shader = render.ShaderByName(c.Render.Shader)
	b.Style = render.Style{
		RulerInterval:  c.Render.RulerInterval,
		ShowRuler:      c.Render.ShowRuler,
		ShowTrees:      c.Render.ShowTrees,
		ShowStructures: c.Render.ShowStructures,
	}

	kinds := make([]string, 0, len(c.Render.Colors))
	for k := range c.Render.Colors {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		kind, err := field.ParseKind(k)
		if err != nil {
			return nil, fmt.Errorf("config: colors: %w", err)
		}
		if err := b.Palette.Override(kind, c.Render.Colors[k]); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return b, nil
}

// NewViewport returns a fresh viewport sized and tuned by c.
func (c *Config) NewViewport() *scene.Viewport {
	w, h := c.Viewport.Width, c.Viewport.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return scene.NewViewport(w, h, c.Orbit)
}
