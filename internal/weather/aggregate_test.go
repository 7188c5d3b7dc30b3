package weather

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func TestAggregateMonthlyPhoenix(t *testing.T) {
	records := []RawRecord{
		{Date: day("2023-01-15"), City: "Phoenix", Temp: 55},
		{Date: day("2023-01-20"), City: "Phoenix", Temp: 65},
		{Date: day("2023-02-10"), City: "Phoenix", Temp: 60},
	}

	got := AggregateMonthly(records)

	assert.Equal(t, []CitySeries{{
		City: "Phoenix",
		Values: []MonthlyAverage{
			{Month: 1, AvgTemp: 60},
			{Month: 2, AvgTemp: 60},
		},
	}}, got)
}

func TestAggregateMonthlyKeepsFirstAppearanceOrder(t *testing.T) {
	records := []RawRecord{
		{Date: day("2023-05-01"), City: "Phoenix", Temp: 90},
		{Date: day("2023-01-01"), City: "Chicago", Temp: 20},
		{Date: day("2023-03-01"), City: "Atlanta", Temp: 50},
		{Date: day("2023-02-01"), City: "Phoenix", Temp: 65},
	}

	got := AggregateMonthly(records)

	require.Len(t, got, 3)
	assert.Equal(t, "Phoenix", got[0].City)
	assert.Equal(t, "Chicago", got[1].City)
	assert.Equal(t, "Atlanta", got[2].City)
}

func TestAggregateMonthlySortedUniqueMonthsAndMeans(t *testing.T) {
	temps := map[int][]float64{}
	var records []RawRecord
	// Walk the months backwards so input order differs from output order.
	for m := 12; m >= 1; m-- {
		for d := 1; d <= 3; d++ {
			temp := float64(m*10 + d*d)
			temps[m] = append(temps[m], temp)
			records = append(records, RawRecord{
				Date: time.Date(2022, time.Month(m), d, 0, 0, 0, 0, time.UTC),
				City: "Charlotte",
				Temp: temp,
			})
		}
	}

	got := AggregateMonthly(records)
	require.Len(t, got, 1)
	values := got[0].Values
	require.Len(t, values, 12)

	for i, v := range values {
		if i > 0 {
			assert.Greater(t, v.Month, values[i-1].Month)
		}
		var sum float64
		for _, temp := range temps[v.Month] {
			sum += temp
		}
		assert.InDelta(t, sum/float64(len(temps[v.Month])), v.AvgTemp, 1e-9)
	}
}

func TestAggregateMonthlyNaN(t *testing.T) {
	records := []RawRecord{
		{Date: day("2023-01-01"), City: "Chicago", Temp: math.NaN()},
		{Date: day("2023-02-01"), City: "Chicago", Temp: 30},
		{Date: day("2023-02-02"), City: "Chicago", Temp: math.NaN()},
	}

	got := AggregateMonthly(records)
	require.Len(t, got, 1)
	require.Len(t, got[0].Values, 2)
	assert.True(t, math.IsNaN(got[0].Values[0].AvgTemp))
	assert.Equal(t, 30.0, got[0].Values[1].AvgTemp)
}

func TestAggregateMonthlyEmpty(t *testing.T) {
	assert.Empty(t, AggregateMonthly(nil))
}

func TestMaxAverageIgnoresNaN(t *testing.T) {
	series := []CitySeries{
		{City: "A", Values: []MonthlyAverage{{Month: 1, AvgTemp: math.NaN()}, {Month: 2, AvgTemp: 41}}},
		{City: "B", Values: []MonthlyAverage{{Month: 1, AvgTemp: 87.5}}},
	}
	assert.Equal(t, 87.5, MaxAverage(series))
	assert.True(t, math.IsNaN(MaxAverage(nil)))
}

func TestCitySeriesUpto(t *testing.T) {
	s := CitySeries{City: "A", Values: []MonthlyAverage{{Month: 2}, {Month: 5}, {Month: 9}}}

	assert.Len(t, s.Upto(12), 3)
	assert.Len(t, s.Upto(5), 2)
	assert.Empty(t, s.Upto(1))
	assert.Len(t, s.Values, 3)
}
