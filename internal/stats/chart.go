package stats

import (
	"fmt"
	"math"
	"strings"
)

const (
	defaultChartHeight = 8
	minChartWidth      = 10
	axisSeparator      = " │ "
	errorMarkerRune    = '×'
	colorReset         = "\x1b[0m"
	curveColor         = "\x1b[36m"
	markerColor        = "\x1b[31m"
)

// RenderWPMChart draws curve as a braille line chart of width x height cells
// with markers overlaid as crosses. X values are seconds, Y values WPM.
func RenderWPMChart(curve, markers []Point, width, height int, color bool) string {
	if len(curve) == 0 {
		return ""
	}
	if height <= 0 {
		height = defaultChartHeight
	}
	if width < minChartWidth {
		width = minChartWidth
	}

	maxX, maxY := chartBounds(curve, markers)
	pxWidth, pxHeight := width*2, height*4
	cells := makeCells(height, width)

	prevX, prevY := -1, -1
	for _, p := range curve {
		px := valueToCol(p.X, maxX, pxWidth)
		py := valueToRow(p.Y, 0, maxY, pxHeight)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(x, y int) {
				setBrailleDot(cells, x, y)
			})
		} else {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}

	marks := make(map[[2]int]bool, len(markers))
	for _, m := range markers {
		col := valueToCol(m.X, maxX, pxWidth) / 2
		row := valueToRow(m.Y, 0, maxY, pxHeight) / 4
		marks[[2]int{row, col}] = true
	}

	labels := makeAxisLabels(height, maxY)
	axisWidth := 0
	for _, l := range labels {
		if len(l) > axisWidth {
			axisWidth = len(l)
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		fmt.Fprintf(&b, "%*s%s", axisWidth, labels[y], axisSeparator)
		for x := 0; x < width; x++ {
			switch {
			case marks[[2]int{y, x}]:
				writeCell(&b, errorMarkerRune, markerColor, color)
			case cells[y][x] != 0:
				writeCell(&b, brailleFromMask(cells[y][x]), curveColor, color)
			default:
				b.WriteRune(brailleFromMask(0))
			}
		}
		b.WriteByte('\n')
	}
	start, end := "0s", fmt.Sprintf("%.1fs", maxX)
	gap := width - len(start) - len(end)
	if gap < 1 {
		gap = 1
	}
	b.WriteString(strings.Repeat(" ", axisWidth+len(axisSeparator)-2))
	b.WriteString(start + strings.Repeat(" ", gap) + end)
	return b.String()
}

func writeCell(b *strings.Builder, r rune, code string, color bool) {
	if !color {
		b.WriteRune(r)
		return
	}
	b.WriteString(code)
	b.WriteRune(r)
	b.WriteString(colorReset)
}

func chartBounds(curve, markers []Point) (float64, float64) {
	maxX, maxY := 0.0, 0.0
	for _, p := range append(append([]Point(nil), curve...), markers...) {
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	if maxX < 1e-9 {
		maxX = 1
	}
	if maxY < 1e-9 {
		maxY = 1
	}
	return maxX, maxY
}

func makeAxisLabels(height int, maxY float64) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = fmt.Sprintf("%.0f", maxY)
	if height > 2 {
		labels[height/2] = fmt.Sprintf("%.0f", maxY/2)
	}
	if height > 1 {
		labels[height-1] = "0"
	}
	return labels
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func valueToCol(v, maxVal float64, width int) int {
	if width <= 1 {
		return 0
	}
	col := int(math.Round(v / maxVal * float64(width-1)))
	if col < 0 {
		col = 0
	}
	if col >= width {
		col = width - 1
	}
	return col
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY, cellX := y/4, x/2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

// brailleDotMask maps a dot inside a 2x4 braille cell to its bit.
func brailleDotMask(x, y int) uint8 {
	masks := [2][4]uint8{
		{0x01, 0x02, 0x04, 0x40},
		{0x08, 0x10, 0x20, 0x80},
	}
	if x < 0 || x > 1 || y < 0 || y > 3 {
		return 0
	}
	return masks[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
