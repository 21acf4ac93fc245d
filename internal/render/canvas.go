package render

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/wellview/internal/scene"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBlank = 0x2800

var dotMask = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille raster with one color per cell. Dot coordinates run
// (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color
	Background    colorful.Color
	// WidthScale converts stroke widths to dot radii.
	WidthScale float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:      w,
		Height:     h,
		Grid:       make([][]rune, h),
		Colors:     make([][]colorful.Color, h),
		WidthScale: 0.1,
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
	}
	c.Clear()
	return c
}

// Dots returns the canvas size in dots.
func (c *Canvas) Dots() (int, int) { return c.Width * 2, c.Height * 4 }

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
			c.Colors[i][j] = c.Background
		}
	}
}

// Set lights the dot at (x, y) and paints its cell.
func (c *Canvas) Set(x, y int, col colorful.Color) {
	if x < 0 || y < 0 {
		return
	}
	cx, cy := x/2, y/4
	if cx >= c.Width || cy >= c.Height {
		return
	}
	if c.Grid[cy][cx] < brailleBlank {
		// Cell holds a label character.
		return
	}
	c.Grid[cy][cx] |= dotMask[y%4][x%2]
	c.Colors[cy][cx] = col
}

// DrawLine draws a line using Bresenham's algorithm. The color is blended
// from c0 to c1 along the line.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, c0, c1 colorful.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	n := max(dx, dy)
	i := 0

	for {
		t := 0.0
		if n > 0 {
			t = float64(i) / float64(n)
		}
		c.Set(x0, y0, c0.BlendLab(c1, t).Clamped())
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
		i++
	}
}

// Label writes text into cells starting at dot (x, y), replacing braille.
func (c *Canvas) Label(x, y int, text string, col colorful.Color, anchor string) {
	runes := []rune(text)
	cx, cy := x/2, y/4
	switch anchor {
	case "end":
		cx -= len(runes)
	case "middle":
		cx -= len(runes) / 2
	}
	if cy < 0 || cy >= c.Height {
		return
	}
	for i, r := range runes {
		col2 := cx + i
		if col2 < 0 || col2 >= c.Width {
			continue
		}
		c.Grid[cy][col2] = r
		c.Colors[cy][col2] = col
	}
}

// Draw rasterizes drawables in order through the zoom transform.
func (c *Canvas) Draw(drawables []Drawable, zoom scene.ZoomTransform) {
	for i := range drawables {
		c.draw(&drawables[i], zoom)
	}
}

func (c *Canvas) draw(d *Drawable, zoom scene.ZoomTransform) {
	if len(d.Points) == 0 || d.Opacity <= 0 {
		return
	}
	if d.IsText() {
		p := zoom.Apply(d.Points[0])
		c.Label(int(math.Round(p.X)), int(math.Round(p.Y)), d.Text, c.fade(d.Stroke, d.Opacity), d.Anchor)
		return
	}

	r := int(math.Round(d.Width * zoom.K * c.WidthScale / 2))
	pts := make([][2]int, len(d.Points))
	for i, p := range d.Points {
		s := zoom.Apply(scene.Point2{X: p.X + d.Offset.X, Y: p.Y + d.Offset.Y})
		pts[i] = [2]int{int(math.Round(s.X)), int(math.Round(s.Y))}
	}

	for i := 0; i < len(pts); i++ {
		j := min(i+1, len(pts)-1)
		if i == j && len(pts) > 1 {
			break
		}
		c0, c1 := d.Stroke, d.Stroke
		o0, o1 := d.Opacity, d.Opacity
		if g := d.Gradient; g != nil {
			var a, b float64
			c0, a = g.At(float64(i) / float64(max(len(pts)-1, 1)))
			c1, b = g.At(float64(j) / float64(max(len(pts)-1, 1)))
			o0, o1 = o0*a, o1*b
		}
		c0, c1 = c.fade(c0, o0), c.fade(c1, o1)
		for ox := -r; ox <= r; ox++ {
			for oy := -r; oy <= r; oy++ {
				c.DrawLine(pts[i][0]+ox, pts[i][1]+oy, pts[j][0]+ox, pts[j][1]+oy, c0, c1)
			}
		}
	}
}

// fade blends col toward the background by opacity.
func (c *Canvas) fade(col colorful.Color, opacity float64) colorful.Color {
	return c.Background.BlendLab(col, clamp01(opacity)).Clamped()
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with each run of same-colored cells wrapped in
// a lipgloss foreground style.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y, row := range c.Grid {
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && c.Colors[y][x] == c.Colors[y][start] {
				continue
			}
			run := string(row[start:x])
			if isBlank(row[start:x]) {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Colors[y][start].Hex())).Render(run))
			}
			start = x
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func isBlank(rs []rune) bool {
	for _, r := range rs {
		if r != brailleBlank {
			return false
		}
	}
	return true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
