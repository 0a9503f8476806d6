package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/asanabria-2021067/CRT-Simulation/internal/crt"
	"github.com/asanabria-2021067/CRT-Simulation/internal/viz"
)

// PhosphorGreen is the P31 trace colour used by default.
const PhosphorGreen = "#33ff66"

// CanvasToSVG converts a Braille canvas to SVG, one dot per set sub-pixel.
func CanvasToSVG(canvas *viz.Canvas, scale float64, color string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, color)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := baseX + float64(dx)*scale + scale/2
					cy := baseY + float64(dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ScreenToSVG draws a trace on a square CRT face centred on the undeflected
// spot. halfWidth is the visible half-extent in display units; zero fits the
// trace with 10% margin. A 10×10 graticule is drawn behind the trace.
func ScreenToSVG(points []crt.Point, size int, halfWidth float64, strokeColor string) string {
	if len(points) == 0 || size <= 0 {
		return ""
	}
	if halfWidth <= 0 {
		for _, p := range points {
			halfWidth = math.Max(halfWidth, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
		halfWidth *= 1.1
		if halfWidth == 0 {
			halfWidth = 1
		}
	}

	scale := float64(size) / (2 * halfWidth)
	centre := float64(size) / 2
	project := func(p crt.Point) (float64, float64) {
		// SVG +Y points down.
		return centre + p.X*scale, centre - p.Y*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g stroke="#1f3f2a" stroke-width="1">
`, size, size, size, size)

	step := float64(size) / 10
	for i := 0; i <= 10; i++ {
		v := float64(i) * step
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"0\" x2=\"%.1f\" y2=\"%d\"/>\n", v, v, size)
		fmt.Fprintf(&sb, "<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\"/>\n", v, size, v)
	}
	sb.WriteString("</g>\n")

	if len(points) == 1 {
		x, y := project(points[0])
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\" fill=\"%s\"/>\n</svg>", x, y, strokeColor)
		return sb.String()
	}

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor)
	for i, p := range points {
		x, y := project(p)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
