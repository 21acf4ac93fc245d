package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wellview/internal/field"
)

var (
	white = colorful.Color{R: 1, G: 1, B: 1}
	black = colorful.Color{}
)

// ComponentStyle is the three-tone color set and base width of a shaded
// cylinder.
type ComponentStyle struct {
	Main      colorful.Color
	Highlight colorful.Color
	Shadow    colorful.Color
	Width     float64
}

// DeriveStyle builds highlight and shadow tones from a single color.
func DeriveStyle(main colorful.Color, width float64) ComponentStyle {
	return ComponentStyle{
		Main:      main,
		Highlight: main.BlendLab(white, 0.45).Clamped(),
		Shadow:    main.BlendLab(black, 0.5).Clamped(),
		Width:     width,
	}
}

// Palette holds every color the frame builder uses.
type Palette struct {
	Components map[field.ComponentKind]ComponentStyle

	PathFrom, PathTo colorful.Color
	PathIdle         colorful.Color

	RulerTick  colorful.Color
	RulerLabel colorful.Color

	PlatformTree ComponentStyle
	SubseaTree   ComponentStyle
	Template     colorful.Color
	Pipe         ComponentStyle

	Tooltip      colorful.Color
	TooltipMuted colorful.Color
	Background   colorful.Color
}

func DefaultPalette() Palette {
	return Palette{
		Components: map[field.ComponentKind]ComponentStyle{
			field.Casing:      style("#94a3b8", "#cbd5e1", "#475569", 24),
			field.Tubing:      style("#10b981", "#6ee7b7", "#047857", 10),
			field.Packer:      style("#f59e0b", "#fcd34d", "#b45309", 22),
			field.Perforation: style("#ef4444", "#fca5a5", "#7f1d1d", 14),
		},
		PathFrom:     mustHex("#2563eb"),
		PathTo:       mustHex("#4ade80"),
		PathIdle:     mustHex("#475569"),
		RulerTick:    mustHex("#9ca3af"),
		RulerLabel:   mustHex("#6b7280"),
		PlatformTree: style("#ef4444", "#ffffff", "#991b1b", 12),
		SubseaTree:   style("#facc15", "#ffffff", "#ca8a04", 12),
		Template:     mustHex("#fbbf24"),
		Pipe:         style("#475569", "#94a3b8", "#0f172a", 6),
		Tooltip:      mustHex("#eab308"),
		TooltipMuted: mustHex("#9ca3af"),
		Background:   mustHex("#0b1120"),
	}
}

// mustHex parses a built-in palette color.
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic("render: bad palette color " + s + ": " + err.Error())
	}
	return c
}

func style(main, highlight, shadow string, width float64) ComponentStyle {
	return ComponentStyle{
		Main:      mustHex(main),
		Highlight: mustHex(highlight),
		Shadow:    mustHex(shadow),
		Width:     width,
	}
}

// Override replaces the colors of a component kind with tones derived from
// hex, keeping its width.
func (p *Palette) Override(kind field.ComponentKind, hex string) error {
	base, ok := p.Components[kind]
	if !ok {
		return fmt.Errorf("render: no style for %q", kind)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("render: color for %s: %w", kind, err)
	}
	styles := make(map[field.ComponentKind]ComponentStyle, len(p.Components))
	for k, v := range p.Components {
		styles[k] = v
	}
	styles[kind] = DeriveStyle(c, base.Width)
	p.Components = styles
	return nil
}
