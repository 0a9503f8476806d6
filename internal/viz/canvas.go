package viz

import (
	"math"
	"strings"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
)

// Braille cells are 2×4 dots:
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a Braille pixel grid. Its size in sub-pixels is
// (Width*2) × (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Pixels returns the sub-pixel dimensions.
func (c *Canvas) Pixels() (w, h int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, pixelMap[y%4][x%2], true
}

// Set lights sub-pixel (x, y). Out-of-range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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

	for {
		c.Set(x0, y0)
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
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// Screen maps display-unit points onto a canvas with the undeflected spot at
// the centre. HalfWidth display units reach the canvas edge on the shorter
// axis.
type Screen struct {
	Canvas    *Canvas
	HalfWidth float64
}

// Map converts p to sub-pixel coordinates. +Y is up on the screen.
func (s Screen) Map(p crt.Point) (x, y int) {
	w, h := s.Canvas.Pixels()
	half := float64(min(w, h)) / 2
	scale := half / s.HalfWidth
	x = w/2 + int(math.Round(p.X*scale))
	y = h/2 - int(math.Round(p.Y*scale))
	return x, y
}

// Graticule marks the centre axes with dotted lines.
func (s Screen) Graticule() {
	w, h := s.Canvas.Pixels()
	for x := 0; x < w; x += 4 {
		s.Canvas.Set(x, h/2)
	}
	for y := 0; y < h; y += 4 {
		s.Canvas.Set(w/2, y)
	}
}

// Trace connects consecutive points.
func (s Screen) Trace(points []crt.Point) {
	for i, p := range points {
		x, y := s.Map(p)
		if i == 0 {
			s.Canvas.Set(x, y)
			continue
		}
		px, py := s.Map(points[i-1])
		s.Canvas.DrawLine(px, py, x, y)
	}
}

// Spot draws a 3×3 dot at p.
func (s Screen) Spot(p crt.Point) {
	x, y := s.Map(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			s.Canvas.Set(x+dx, y+dy)
		}
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
