package render

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wellview/internal/scene"
)

// SVGOptions sizes the document and places the drawables on it.
type SVGOptions struct {
	Width, Height int
	Zoom          scene.ZoomTransform
	Background    colorful.Color
}

// WriteSVG writes drawables as a standalone SVG document.
func WriteSVG(w io.Writer, drawables []Drawable, opt SVGOptions) error {
	_, err := io.WriteString(w, SVG(drawables, opt))
	return err
}

// SVG renders drawables to an SVG document string.
func SVG(drawables []Drawable, opt SVGOptions) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<filter id="glow"><feGaussianBlur stdDeviation="2.5" result="coloredBlur"/><feMerge><feMergeNode in="coloredBlur"/><feMergeNode in="SourceGraphic"/></feMerge></filter>
`, opt.Width, opt.Height, opt.Width, opt.Height, opt.Background.Hex())

	grads := make(map[int]string)
	for i, d := range drawables {
		if d.Gradient == nil {
			continue
		}
		id := fmt.Sprintf("grad-%d", i)
		grads[i] = id
		x2, y2 := "0%", "100%"
		if d.Gradient.Horizontal {
			x2, y2 = "100%", "0%"
		}
		fmt.Fprintf(&sb, `<linearGradient id="%s" x1="0%%" y1="0%%" x2="%s" y2="%s"><stop offset="0%%" stop-color="%s" stop-opacity="%s"/><stop offset="100%%" stop-color="%s" stop-opacity="%s"/></linearGradient>
`, id, x2, y2, d.Gradient.From.Hex(), num(d.Gradient.FromOpacity), d.Gradient.To.Hex(), num(d.Gradient.ToOpacity))
	}
	sb.WriteString("</defs>\n")

	z := opt.Zoom
	if z.K == 0 {
		z = scene.CenteredZoom(float64(opt.Width), float64(opt.Height))
	}
	fmt.Fprintf(&sb, `<g transform="translate(%s,%s) scale(%s)">
`, num(z.TX), num(z.TY), num(z.K))

	layer := Layer(-1)
	for i := range drawables {
		d := &drawables[i]
		if d.Layer != layer {
			if layer >= 0 {
				sb.WriteString("</g>\n")
			}
			layer = d.Layer
			fmt.Fprintf(&sb, `<g class="%s-layer">
`, layer)
		}
		if d.IsText() {
			writeText(&sb, d)
		} else {
			writePath(&sb, d, grads[i])
		}
	}
	if layer >= 0 {
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func writePath(sb *strings.Builder, d *Drawable, grad string) {
	if len(d.Points) == 0 {
		return
	}
	stroke := d.Stroke.Hex()
	if grad != "" {
		stroke = "url(#" + grad + ")"
	}
	fmt.Fprintf(sb, `<path data-id="%s"%s d="`, html.EscapeString(d.ID), tagAttrs(d.Tag))
	for i, p := range d.Points {
		if i == 0 {
			fmt.Fprintf(sb, "M%s,%s", num(p.X), num(p.Y))
		} else {
			fmt.Fprintf(sb, " L%s,%s", num(p.X), num(p.Y))
		}
	}
	fmt.Fprintf(sb, `" fill="none" stroke="%s" stroke-width="%s" stroke-linejoin="round"`, stroke, num(d.Width))
	if d.Opacity != 1 {
		fmt.Fprintf(sb, ` opacity="%s"`, num(d.Opacity))
	}
	if d.Offset != (scene.Point2{}) {
		fmt.Fprintf(sb, ` transform="translate(%s,%s)"`, num(d.Offset.X), num(d.Offset.Y))
	}
	if d.Glow {
		sb.WriteString(` filter="url(#glow)"`)
	}
	sb.WriteString("/>\n")
}

func writeText(sb *strings.Builder, d *Drawable) {
	if len(d.Points) == 0 {
		return
	}
	p := d.Points[0]
	anchor := d.Anchor
	if anchor == "" {
		anchor = "start"
	}
	fmt.Fprintf(sb, `<text data-id="%s" x="%s" y="%s" text-anchor="%s" dominant-baseline="middle" fill="%s" font-size="%spx">%s</text>
`, html.EscapeString(d.ID), num(p.X), num(p.Y), anchor, d.Stroke.Hex(), num(d.FontSize), html.EscapeString(d.Text))
}

func tagAttrs(t Tag) string {
	if !t.Pickable() {
		return ""
	}
	s := fmt.Sprintf(` data-well="%s" data-part="%s"`, html.EscapeString(t.WellID), t.Part)
	if t.ComponentID != "" {
		s += fmt.Sprintf(` data-component="%s"`, html.EscapeString(t.ComponentID))
	}
	return s
}

// num formats coordinates compactly.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
