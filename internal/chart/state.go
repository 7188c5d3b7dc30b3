package chart

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/temperature-chart/internal/weather"
)

// Margins around the plot area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Geometry is the fixed canvas layout of the chart.
type Geometry struct {
	Width, Height int
	Margins       Margins
}

// DefaultGeometry is a 900x400 canvas.
var DefaultGeometry = Geometry{
	Width:   900,
	Height:  400,
	Margins: Margins{Top: 50, Right: 100, Bottom: 60, Left: 70},
}

// PlotWidth is the width of the area inside the margins.
func (g Geometry) PlotWidth() int {
	return g.Width - g.Margins.Left - g.Margins.Right
}

// PlotHeight is the height of the area inside the margins.
func (g Geometry) PlotHeight() int {
	return g.Height - g.Margins.Top - g.Margins.Bottom
}

const (
	FirstMonth = 1
	LastMonth  = 12

	// yTickCount is the requested number of temperature ticks.
	yTickCount = 10
)

// State is everything a render needs, derived once per dataset load.
// A State is never modified after NewState returns; reloads build a new one.
type State struct {
	Version  string
	LoadedAt time.Time
	Series   []weather.CitySeries
	Geometry Geometry
	X        LinearScale
	Y        LinearScale
	Colors   *OrdinalScale

	// Meta carries load diagnostics for the API.
	Meta LoadMeta

	cities []string
	byCity map[string]int
}

// LoadMeta describes the load that produced a State.
type LoadMeta struct {
	Source   string              `json:"source"`
	Checksum uint64              `json:"checksum"`
	Decode   weather.DecodeStats `json:"decode"`
}

// NewState builds the scales for series and returns the immutable chart state.
func NewState(series []weather.CitySeries, loadedAt time.Time, meta LoadMeta) *State {
	return NewStateWithGeometry(series, loadedAt, meta, DefaultGeometry)
}

// NewStateWithGeometry is NewState with a custom canvas.
func NewStateWithGeometry(series []weather.CitySeries, loadedAt time.Time, meta LoadMeta, g Geometry) *State {
	cities := make([]string, 0, len(series))
	byCity := make(map[string]int, len(series))
	for i, s := range series {
		cities = append(cities, s.City)
		byCity[s.City] = i
	}

	maxTemp := weather.MaxAverage(series)
	if math.IsNaN(maxTemp) || maxTemp <= 0 {
		maxTemp = 1
	}

	return &State{
		Version:  uuid.NewString(),
		LoadedAt: loadedAt,
		Series:   series,
		Geometry: g,
		X:        NewLinearScale(FirstMonth, LastMonth, 0, float64(g.PlotWidth())),
		Y:        NewLinearScale(0, maxTemp, float64(g.PlotHeight()), 0).Nice(yTickCount),
		Colors:   NewOrdinalScale(Category10, cities),
		Meta:     meta,
		cities:   cities,
		byCity:   byCity,
	}
}

// Cities returns the city names in first-appearance order.
func (s *State) Cities() []string {
	out := make([]string, len(s.cities))
	copy(out, s.cities)
	return out
}

// HasCity reports whether the dataset contains city.
func (s *State) HasCity(city string) bool {
	_, ok := s.byCity[city]
	return ok
}

// SeriesFor returns the series of one city.
func (s *State) SeriesFor(city string) (weather.CitySeries, bool) {
	i, ok := s.byCity[city]
	if !ok {
		return weather.CitySeries{}, false
	}
	return s.Series[i], true
}
