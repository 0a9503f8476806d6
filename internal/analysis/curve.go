package analysis

import (
	"math"
	"strings"
)

// Point is one X-Y sample of a figure.
type Point struct {
	X, Y float64
}

// CurvePoints zips two slices into points, truncating to the shorter one.
func CurvePoints(x, y []float64) []Point {
	n := min(len(x), len(y))
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = Point{X: x[i], Y: y[i]}
	}
	return pts
}

// frame maps figure coordinates onto a character grid.
type frame struct {
	x0, x1, y0, y1 float64
	cols, rows     int
}

func newFrame(points []Point, cols, rows int) frame {
	f := frame{
		x0: math.Inf(1), x1: math.Inf(-1),
		y0: math.Inf(1), y1: math.Inf(-1),
		cols: cols, rows: rows,
	}
	for _, p := range points {
		f.x0, f.x1 = math.Min(f.x0, p.X), math.Max(f.x1, p.X)
		f.y0, f.y1 = math.Min(f.y0, p.Y), math.Max(f.y1, p.Y)
	}
	f.x0, f.x1 = pad(f.x0, f.x1)
	f.y0, f.y1 = pad(f.y0, f.y1)
	return f
}

// pad widens [lo, hi] by 10% per side; a flat span becomes one unit wide.
func pad(lo, hi float64) (float64, float64) {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	return lo - 0.1*span, hi + 0.1*span
}

// cell returns the grid position of (x, y), row 0 at the top.
func (f frame) cell(x, y float64) (col, row int) {
	col = int((x - f.x0) / (f.x1 - f.x0) * float64(f.cols-1))
	row = f.rows - 1 - int((y-f.y0)/(f.y1-f.y0)*float64(f.rows-1))
	return col, row
}

func (f frame) inside(col, row int) bool {
	return col >= 0 && col < f.cols && row >= 0 && row < f.rows
}

// CurveToASCII draws the figure on a width×height character grid with 10%
// padding. Consecutive samples are joined so sparse traces stay connected,
// and the axes are drawn where they cross the visible area.
func CurveToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}
	f := newFrame(points, width, height)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	originCol, originRow := f.cell(0, 0)
	if f.x0 <= 0 && f.x1 >= 0 {
		for row := range grid {
			grid[row][originCol] = '│'
		}
	}
	if f.y0 <= 0 && f.y1 >= 0 {
		for col := range grid[originRow] {
			if grid[originRow][col] == '│' {
				grid[originRow][col] = '┼'
			} else {
				grid[originRow][col] = '─'
			}
		}
	}

	prevCol, prevRow := f.cell(points[0].X, points[0].Y)
	for _, p := range points {
		col, row := f.cell(p.X, p.Y)
		steps := max(abs(col-prevCol), abs(row-prevRow), 1)
		for s := 1; s <= steps; s++ {
			c := prevCol + (col-prevCol)*s/steps
			r := prevRow + (row-prevRow)*s/steps
			if f.inside(c, r) {
				grid[r][c] = '•'
			}
		}
		prevCol, prevRow = col, row
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
