package chart

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/temperature-chart/internal/weather"
)

// fullYear builds a 12-month series with AvgTemp = month * step.
func fullYear(city string, step float64) weather.CitySeries {
	s := weather.CitySeries{City: city}
	for m := 1; m <= 12; m++ {
		s.Values = append(s.Values, weather.MonthlyAverage{Month: m, AvgTemp: float64(m) * step})
	}
	return s
}

func testState(series ...weather.CitySeries) *State {
	return NewState(series, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), LoadMeta{Source: "test"})
}

func TestNewStateScales(t *testing.T) {
	state := testState(fullYear("Austin", 5), fullYear("Boston", 6))

	assert.Equal(t, [2]float64{1, 12}, state.X.Domain)
	assert.Equal(t, [2]float64{0, 730}, state.X.Range)
	assert.Equal(t, [2]float64{0, 80}, state.Y.Domain)
	assert.Equal(t, [2]float64{290, 0}, state.Y.Range)
	assert.Equal(t, []string{"Austin", "Boston"}, state.Cities())
	assert.NotEmpty(t, state.Version)
}

func TestNewStateWithoutPositiveData(t *testing.T) {
	state := testState()
	assert.Equal(t, [2]float64{0, 1}, state.Y.Domain)

	state = testState(weather.CitySeries{City: "Nome", Values: []weather.MonthlyAverage{{Month: 1, AvgTemp: math.NaN()}}})
	assert.Equal(t, [2]float64{0, 1}, state.Y.Domain)
}

func TestLayoutFiltersCitiesAndMonths(t *testing.T) {
	state := testState(fullYear("Austin", 5), fullYear("Boston", 6))

	plot := Layout(state, SelectCities(6, "Austin"))

	require.Len(t, plot.Lines, 1)
	line := plot.Lines[0]
	assert.Equal(t, "Austin", line.City)
	require.Len(t, line.Points, 6)
	for i, p := range line.Points {
		assert.Equal(t, i+1, p.Month)
	}
	assert.Equal(t, Category10[0], line.Color)

	last := line.Points[5]
	assert.InDelta(t, state.X.Map(6), last.X, 1e-9)
	assert.InDelta(t, state.Y.Map(30), last.Y, 1e-9)
	assert.Equal(t, Label{Text: "Austin", X: last.X + 8, Y: last.Y}, line.Label)
}

func TestLayoutSingleMonth(t *testing.T) {
	state := testState(fullYear("Austin", 5), fullYear("Boston", 6))

	plot := Layout(state, SelectAll(state, 1))

	require.Len(t, plot.Lines, 2)
	for _, l := range plot.Lines {
		require.Len(t, l.Points, 1)
		assert.Equal(t, 1, l.Points[0].Month)
		assert.Equal(t, 0.0, l.Points[0].X)
	}
}

func TestLayoutAllMonths(t *testing.T) {
	state := testState(fullYear("Austin", 5))
	plot := Layout(state, SelectAll(state, 12))

	require.Len(t, plot.Lines, 1)
	assert.Len(t, plot.Lines[0].Points, 12)
	assert.Len(t, plot.XTicks, 12)
	assert.Equal(t, "12", plot.XTicks[11].Text)
	assert.Equal(t, 730.0, plot.XTicks[11].Pos)
	assert.Equal(t, "0", plot.YTicks[0].Text)
	assert.Equal(t, 290.0, plot.YTicks[0].Pos)
}

func TestLayoutSkipsCityWithNoVisiblePoints(t *testing.T) {
	late := weather.CitySeries{City: "Chicago", Values: []weather.MonthlyAverage{{Month: 5, AvgTemp: 60}, {Month: 6, AvgTemp: 70}}}
	state := testState(fullYear("Austin", 5), late)

	plot := Layout(state, SelectAll(state, 3))

	require.Len(t, plot.Lines, 1)
	assert.Equal(t, "Austin", plot.Lines[0].City)
}

func TestLayoutDropsNaNPoints(t *testing.T) {
	s := weather.CitySeries{City: "Phoenix", Values: []weather.MonthlyAverage{
		{Month: 1, AvgTemp: 60},
		{Month: 2, AvgTemp: math.NaN()},
	}}
	state := testState(s)

	plot := Layout(state, SelectAll(state, 12))

	require.Len(t, plot.Lines, 1)
	line := plot.Lines[0]
	require.Len(t, line.Points, 1)
	// Phoenix carries its own label offset.
	assert.Equal(t, line.Points[0].X-25, line.Label.X)
	assert.Equal(t, line.Points[0].Y-20, line.Label.Y)
}

func TestLabelOffsets(t *testing.T) {
	assert.Equal(t, Offset{DX: -25, DY: 10}, LabelOffset("Jacksonville"))
	assert.Equal(t, Offset{DX: 10, DY: 15}, LabelOffset("Charlotte"))
	assert.Equal(t, Offset{DX: 0, DY: -15}, LabelOffset("Philadelphia"))
	assert.Equal(t, Offset{}, LabelOffset("Chicago"))
	assert.Equal(t, Offset{DX: -25, DY: 15}, LabelOffset("Indianapolis"))
	assert.Equal(t, Offset{DX: 8}, LabelOffset("Houston"))
}

func TestRenderOnlySelectedCity(t *testing.T) {
	state := testState(fullYear("Austin", 5), fullYear("Boston", 6))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, state, SelectCities(6, "Austin")))
	out := buf.String()

	assert.Equal(t, 1, strings.Count(out, "<polyline"))
	assert.Contains(t, out, ">Austin</text>")
	assert.NotContains(t, out, "Boston")
	assert.NotContains(t, out, Category10[1])
	assert.Contains(t, out, ">Month</text>")
	assert.Contains(t, out, YAxisLabel)
	assert.Contains(t, out, `width="900"`)
	assert.Contains(t, out, `height="400"`)
}

func TestRenderIsIdempotent(t *testing.T) {
	state := testState(fullYear("Austin", 5), fullYear("Boston", 6), fullYear("Chicago", 4))
	sel := SelectCities(9, "Boston", "Chicago")

	var first, second bytes.Buffer
	require.NoError(t, Render(&first, state, sel))
	require.NoError(t, Render(&second, state, sel))

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, Layout(state, sel), Layout(state, sel))
}

func TestRenderSinglePointGetsMarker(t *testing.T) {
	state := testState(fullYear("Austin", 5))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, state, SelectAll(state, 1)))
	assert.Equal(t, 1, strings.Count(buf.String(), "<circle"))
}

func TestRenderEscapesCityNames(t *testing.T) {
	state := testState(fullYear("Winston<Salem>", 5))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, state, SelectAll(state, 12)))
	assert.Contains(t, buf.String(), "Winston&lt;Salem&gt;")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderReportsWriteError(t *testing.T) {
	state := testState(fullYear("Austin", 5))
	err := Render(failingWriter{}, state, SelectAll(state, 12))
	assert.EqualError(t, err, "disk full")
}
