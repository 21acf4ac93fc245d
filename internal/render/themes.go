package render

import (
	"fmt"
)

// Theme recolors the scene chrome of a palette. Component colors are left
// alone so casing, tubing, packers and perforations read the same in every
// theme.
type Theme struct {
	Name       string
	Background string
	PathFrom   string
	PathTo     string
	PathIdle   string
	Ruler      string
	RulerLabel string
	Tooltip    string
	Muted      string
}

var (
	ThemeDefault = Theme{
		Name:       "default",
		Background: "#0b1120",
		PathFrom:   "#2563eb",
		PathTo:     "#4ade80",
		PathIdle:   "#475569",
		Ruler:      "#9ca3af",
		RulerLabel: "#6b7280",
		Tooltip:    "#eab308",
		Muted:      "#9ca3af",
	}

	// ThemePaper is for printed and embedded SVG.
	ThemePaper = Theme{
		Name:       "paper",
		Background: "#ffffff",
		PathFrom:   "#1d4ed8",
		PathTo:     "#15803d",
		PathIdle:   "#94a3b8",
		Ruler:      "#4b5563",
		RulerLabel: "#374151",
		Tooltip:    "#b45309",
		Muted:      "#6b7280",
	}

	ThemeRetro = Theme{
		Name:       "retro",
		Background: "#001100",
		PathFrom:   "#00cc00",
		PathTo:     "#88ff88",
		PathIdle:   "#005500",
		Ruler:      "#00aa00",
		RulerLabel: "#007700",
		Tooltip:    "#ffff00",
		Muted:      "#00aa00",
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Background: "#001a33",
		PathFrom:   "#0077be",
		PathTo:     "#00a8cc",
		PathIdle:   "#4488aa",
		Ruler:      "#4488aa",
		RulerLabel: "#336688",
		Tooltip:    "#ffd700",
		Muted:      "#e0f0ff",
	}

	Themes = []Theme{ThemeDefault, ThemePaper, ThemeRetro, ThemeOcean}
)

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, error) {
	if name == "" {
		return ThemeDefault, nil
	}
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("render: unknown theme %q (available: %v)", name, ThemeNames())
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Apply recolors p with t.
func (t Theme) Apply(p *Palette) {
	p.Background = mustHex(t.Background)
	p.PathFrom = mustHex(t.PathFrom)
	p.PathTo = mustHex(t.PathTo)
	p.PathIdle = mustHex(t.PathIdle)
	p.RulerTick = mustHex(t.Ruler)
	p.RulerLabel = mustHex(t.RulerLabel)
	p.Tooltip = mustHex(t.Tooltip)
	p.TooltipMuted = mustHex(t.Muted)
}
