package export

import (
	"fmt"
	"strings"

	"github.com/TesfahunTaddege/Infectious-disease-modeling/internal/sim"
)

var curveColors = map[string]string{
	"S": "#4c9be8",
	"E": "#e8b44c",
	"I": "#e84c4c",
	"R": "#4ce88a",
}

const svgMargin = 40.0

// CurvesSVG renders the compartment trajectories as an SVG line chart.
func CurvesSVG(result *sim.Result, width, height int) string {
	if result.Len() == 0 {
		return ""
	}

	w := float64(width)
	h := float64(height)
	plotW := w - 2*svgMargin
	plotH := h - 2*svgMargin

	tMin := result.Times[0]
	tMax := result.Times[result.Len()-1]
	if tMax == tMin {
		tMax = tMin + 1
	}

	yMax := 0.0
	for _, s := range result.States {
		for _, v := range s {
			if v > yMax {
				yMax = v
			}
		}
	}
	if yMax == 0 {
		yMax = 1
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height))

	// axes
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1"/>
`, svgMargin, h-svgMargin, w-svgMargin, h-svgMargin))
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1"/>
`, svgMargin, svgMargin, svgMargin, h-svgMargin))

	for j, name := range result.Compartments {
		color, ok := curveColors[name]
		if !ok {
			color = "#888888"
		}

		var points strings.Builder
		for i := range result.States {
			x := svgMargin + plotW*(result.Times[i]-tMin)/(tMax-tMin)
			y := h - svgMargin - plotH*(result.States[i][j]/yMax)
			if i > 0 {
				points.WriteByte(' ')
			}
			fmt.Fprintf(&points, "%.2f,%.2f", x, y)
		}

		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="%s" stroke-width="1.5" points="%s"/>
`, color, points.String()))

		// legend
		lx := svgMargin + 10 + float64(j)*60
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="10" height="10" fill="%s"/>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="12" fill="#333">%s</text>
`, lx, svgMargin-25, color, lx+14, svgMargin-16, name))
	}

	// axis labels
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-family="monospace" font-size="11" fill="#333">%.0f</text>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="11" fill="#333">%.0f</text>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="11" fill="#333">%.0f</text>
`, svgMargin, h-svgMargin+15, tMin, w-svgMargin-20, h-svgMargin+15, tMax, 5.0, svgMargin+4, yMax))

	sb.WriteString("</svg>\n")
	return sb.String()
}
