package ui

import (
	"fmt"
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"doc-chat/chart"
)

// palette cycles across series entries.
var palette = []color.NRGBA{
	{R: 0x4e, G: 0x79, B: 0xa7, A: 0xff},
	{R: 0xf2, G: 0x8e, B: 0x2b, A: 0xff},
	{R: 0xe1, G: 0x57, B: 0x59, A: 0xff},
	{R: 0x76, G: 0xb7, B: 0xb2, A: 0xff},
	{R: 0x59, G: 0xa1, B: 0x4f, A: 0xff},
	{R: 0xed, G: 0xc9, B: 0x48, A: 0xff},
	{R: 0xb0, G: 0x7a, B: 0xa1, A: 0xff},
}

var axisColor = color.NRGBA{R: 0x9a, G: 0x9a, B: 0x9a, A: 0xff}

// chartPoint is one usable record: a label and a numeric value.
type chartPoint struct {
	label string
	value float64
}

// NewChartView renders a chart payload as a canvas object. Records
// missing their category or value field are skipped rather than
// failing the whole chart.
func NewChartView(c *chart.Chart) fyne.CanvasObject {
	points := collectPoints(c)

	body := container.NewVBox()
	if c.Title != "" {
		title := widget.NewLabel(c.Title)
		title.TextStyle = fyne.TextStyle{Bold: true}
		body.Add(title)
	}

	if len(points) == 0 {
		body.Add(widget.NewLabel("(chart has no usable data)"))
		return body
	}

	switch c.Type {
	case chart.TypeBar:
		body.Add(buildBarChart(points))
	case chart.TypeLine:
		body.Add(buildLineChart(points))
	case chart.TypePie:
		body.Add(buildPieChart(points))
	}

	return body
}

// collectPoints pulls the usable records out of the payload.
func collectPoints(c *chart.Chart) []chartPoint {
	var points []chartPoint
	for _, record := range c.Data {
		label := c.Label(record)
		value, ok := c.Value(record)
		if label == "" || !ok {
			continue
		}
		points = append(points, chartPoint{label: label, value: value})
	}
	return points
}

// buildBarChart renders horizontal bars scaled to the largest value.
func buildBarChart(points []chartPoint) fyne.CanvasObject {
	const maxBarWidth = 280

	maxVal := 0.0
	for _, p := range points {
		if math.Abs(p.value) > maxVal {
			maxVal = math.Abs(p.value)
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	rows := container.NewVBox()
	for i, p := range points {
		bar := canvas.NewRectangle(palette[i%len(palette)])
		width := float32(math.Abs(p.value) / maxVal * maxBarWidth)
		if width < 2 {
			width = 2
		}
		bar.SetMinSize(fyne.NewSize(width, 18))

		label := widget.NewLabel(p.label)
		value := widget.NewLabel(formatValue(p.value))

		rows.Add(container.NewHBox(label, bar, value))
	}
	return rows
}

// buildLineChart renders a polyline in a fixed-size plot area.
func buildLineChart(points []chartPoint) fyne.CanvasObject {
	const (
		plotW = 420
		plotH = 160
		pad   = 10
	)

	if len(points) < 2 {
		return buildBarChart(points)
	}

	minVal, maxVal := points[0].value, points[0].value
	for _, p := range points {
		minVal = math.Min(minVal, p.value)
		maxVal = math.Max(maxVal, p.value)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	toPos := func(i int, v float64) fyne.Position {
		x := pad + float32(i)/float32(len(points)-1)*(plotW-2*pad)
		y := plotH - pad - float32((v-minVal)/(maxVal-minVal))*(plotH-2*pad)
		return fyne.NewPos(x, y)
	}

	plot := container.NewWithoutLayout()

	xAxis := canvas.NewLine(axisColor)
	xAxis.Position1 = fyne.NewPos(pad, plotH-pad)
	xAxis.Position2 = fyne.NewPos(plotW-pad, plotH-pad)
	yAxis := canvas.NewLine(axisColor)
	yAxis.Position1 = fyne.NewPos(pad, pad)
	yAxis.Position2 = fyne.NewPos(pad, plotH-pad)
	plot.Add(xAxis)
	plot.Add(yAxis)

	for i := 1; i < len(points); i++ {
		segment := canvas.NewLine(palette[0])
		segment.StrokeWidth = 2
		segment.Position1 = toPos(i-1, points[i-1].value)
		segment.Position2 = toPos(i, points[i].value)
		plot.Add(segment)
	}

	// Fix the plot's footprint inside the VBox.
	spacer := canvas.NewRectangle(color.Transparent)
	spacer.SetMinSize(fyne.NewSize(plotW, plotH))
	plot.Add(spacer)

	first, last := points[0], points[len(points)-1]
	footer := widget.NewLabel(fmt.Sprintf("%s … %s   (range %s – %s)",
		first.label, last.label, formatValue(minVal), formatValue(maxVal)))

	return container.NewVBox(plot, footer)
}

// buildPieChart renders a raster disc with a legend. Slice angles are
// proportional to each point's share of the total.
func buildPieChart(points []chartPoint) fyne.CanvasObject {
	const size = 150

	total := 0.0
	for _, p := range points {
		if p.value > 0 {
			total += p.value
		}
	}
	if total == 0 {
		return widget.NewLabel("(chart has no usable data)")
	}

	// Precompute each slice's end angle as a fraction of the circle.
	ends := make([]float64, len(points))
	running := 0.0
	for i, p := range points {
		if p.value > 0 {
			running += p.value / total
		}
		ends[i] = running
	}

	disc := canvas.NewRasterWithPixels(func(x, y, w, h int) color.Color {
		cx, cy := float64(w)/2, float64(h)/2
		dx, dy := float64(x)-cx, float64(y)-cy
		r := math.Min(cx, cy)
		if dx*dx+dy*dy > r*r {
			return color.Transparent
		}
		// Angle as a 0..1 fraction, starting at 12 o'clock.
		frac := (math.Atan2(dx, -dy) + math.Pi) / (2 * math.Pi)
		for i, end := range ends {
			if frac <= end {
				return palette[i%len(palette)]
			}
		}
		return palette[(len(ends)-1)%len(palette)]
	})
	disc.SetMinSize(fyne.NewSize(size, size))

	legend := container.NewVBox()
	for i, p := range points {
		swatch := canvas.NewRectangle(palette[i%len(palette)])
		swatch.SetMinSize(fyne.NewSize(12, 12))
		share := ""
		if p.value > 0 {
			share = fmt.Sprintf(" (%.0f%%)", p.value/total*100)
		}
		legend.Add(container.NewHBox(swatch, widget.NewLabel(p.label+share)))
	}

	return container.NewHBox(disc, legend)
}

// formatValue trims trailing zeros from axis/bar labels.
func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
