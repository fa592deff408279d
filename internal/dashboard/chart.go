package dashboard

import "enrollment-dashboard-service/internal/enrollments/core/domain"

// Chart geometry, in SVG user units.
const (
	chartWidth      = 820
	chartLabelWidth = 260
	chartValueWidth = 70
	chartMinHeight  = 260
	chartRowHeight  = 28
)

type Bar struct {
	Label  string
	Value  string
	Y      float64
	Height float64
	Width  float64
	TextY  float64
}

type BarChart struct {
	Width      int
	Height     int
	LabelWidth int
	PlotWidth  int
	Bars       []Bar
}

// ChartHeight grows with the number of rows, with a floor for short lists.
func ChartHeight(rows int) int {
	if h := chartRowHeight * rows; h > chartMinHeight {
		return h
	}
	return chartMinHeight
}

// NewBarChart lays out one horizontal bar per row in the given order.
// Bar length is proportional to the count, relative to the largest one.
func NewBarChart(rows []domain.AggregatedRow, format func(int64) string) BarChart {
	ch := BarChart{
		Width:      chartWidth,
		Height:     ChartHeight(len(rows)),
		LabelWidth: chartLabelWidth,
		PlotWidth:  chartWidth - chartLabelWidth - chartValueWidth,
	}
	if len(rows) == 0 {
		return ch
	}

	var maxCount int64
	for _, r := range rows {
		if r.Count > maxCount {
			maxCount = r.Count
		}
	}

	band := float64(ch.Height) / float64(len(rows))
	thickness := band * 0.7

	ch.Bars = make([]Bar, 0, len(rows))
	for i, r := range rows {
		var width float64
		if maxCount > 0 {
			width = float64(r.Count) / float64(maxCount) * float64(ch.PlotWidth)
		}
		y := float64(i)*band + (band-thickness)/2
		ch.Bars = append(ch.Bars, Bar{
			Label:  r.Branch,
			Value:  format(r.Count),
			Y:      y,
			Height: thickness,
			Width:  width,
			TextY:  y + thickness/2,
		})
	}
	return ch
}
