package chart

import (
	"math"
	"strconv"
)

const (
	XAxisLabel = "Month"
	YAxisLabel = "Avg Mean Temp (°F)"
)

// Offset nudges an endpoint label away from its point, in pixels.
type Offset struct {
	DX, DY float64
}

// labelOffsets keeps known cities' labels clear of the axes and of each other.
var labelOffsets = map[string]Offset{
	"Phoenix":      {DX: -25, DY: -20},
	"Jacksonville": {DX: -25, DY: 10},
	"Charlotte":    {DX: 10, DY: 15},
	"Philadelphia": {DX: 0, DY: -15},
	"Chicago":      {DX: 0, DY: 0},
	"Indianapolis": {DX: -25, DY: 15},
}

var defaultOffset = Offset{DX: 8, DY: 0}

// LabelOffset returns the endpoint label offset for city.
func LabelOffset(city string) Offset {
	if o, ok := labelOffsets[city]; ok {
		return o
	}
	return defaultOffset
}

// Point is a monthly average with its plot coordinates.
type Point struct {
	Month   int     `json:"month"`
	AvgTemp float64 `json:"avgTemp"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

// Label is a positioned piece of text.
type Label struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Line is one city's polyline plus its endpoint label.
type Line struct {
	City   string  `json:"city"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
	Label  Label   `json:"label"`
}

// Tick is an axis tick at plot position Pos.
type Tick struct {
	Value float64 `json:"value"`
	Text  string  `json:"text"`
	Pos   float64 `json:"pos"`
}

// Plot is the fully positioned chart, ready to be written out.
type Plot struct {
	Geometry Geometry `json:"-"`
	XTicks   []Tick   `json:"xTicks"`
	YTicks   []Tick   `json:"yTicks"`
	XLabel   string   `json:"xLabel"`
	YLabel   string   `json:"yLabel"`
	Lines    []Line   `json:"lines"`
}

// Layout positions every element of the chart for sel. It only reads state.
//
// Cities are drawn in dataset order. Points after sel.MaxMonth are dropped, as are
// points whose average is not a finite number. A city left with no points is
// skipped entirely: no line and no label.
func Layout(state *State, sel Selection) Plot {
	plot := Plot{
		Geometry: state.Geometry,
		XLabel:   XAxisLabel,
		YLabel:   YAxisLabel,
	}

	for m := FirstMonth; m <= LastMonth; m++ {
		plot.XTicks = append(plot.XTicks, Tick{
			Value: float64(m),
			Text:  strconv.Itoa(m),
			Pos:   state.X.Map(float64(m)),
		})
	}
	for _, v := range state.Y.Ticks(yTickCount) {
		plot.YTicks = append(plot.YTicks, Tick{
			Value: v,
			Text:  strconv.FormatFloat(v, 'f', -1, 64),
			Pos:   state.Y.Map(v),
		})
	}

	for _, series := range state.Series {
		if !sel.Has(series.City) {
			continue
		}

		var points []Point
		for _, v := range series.Upto(sel.MaxMonth) {
			if math.IsNaN(v.AvgTemp) || math.IsInf(v.AvgTemp, 0) {
				continue
			}
			points = append(points, Point{
				Month:   v.Month,
				AvgTemp: v.AvgTemp,
				X:       state.X.Map(float64(v.Month)),
				Y:       state.Y.Map(v.AvgTemp),
			})
		}
		if len(points) == 0 {
			continue
		}

		last := points[len(points)-1]
		off := LabelOffset(series.City)
		plot.Lines = append(plot.Lines, Line{
			City:   series.City,
			Color:  state.Colors.Color(series.City),
			Points: points,
			Label: Label{
				Text: series.City,
				X:    last.X + off.DX,
				Y:    last.Y + off.DY,
			},
		})
	}

	return plot
}
