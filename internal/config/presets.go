package config

import "sort"

var Presets = map[string]func() *Config{
	"compact": func() *Config {
		cfg := DefaultConfig()
		cfg.Viewport = ViewportConfig{Width: 400, Height: 300}
		cfg.Render.ShowStructures = false
		cfg.Render.Shader = "flat"
		return cfg
	},
	"presentation": func() *Config {
		cfg := DefaultConfig()
		cfg.Viewport = ViewportConfig{Width: 1600, Height: 1000}
		cfg.Orbit.Friction = 0.97
		cfg.Render.RulerInterval = 250
		cfg.Render.Theme = "paper"
		return cfg
	},
	"survey-qc": func() *Config {
		cfg := DefaultConfig()
		cfg.Render.ShowTrees = false
		cfg.Render.ShowStructures = false
		cfg.Render.RulerInterval = 100
		cfg.Orbit.Sensitivity = 0.005
		return cfg
	},
}

func GetPreset(name string) *Config {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
