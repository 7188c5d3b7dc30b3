package weather

import (
	"time"
)

// RawRecord is one daily reading decoded from the input CSV.
// Records are consumed once by AggregateMonthly and then discarded.
type RawRecord struct {
	Date time.Time
	City string
	Temp float64 // NaN when the source value was not numeric
}

// Month returns the calendar month (1-12) of the record date.
func (r RawRecord) Month() int {
	return int(r.Date.Month())
}

// MonthlyAverage is the mean temperature of one city over one calendar month.
type MonthlyAverage struct {
	Month   int     `json:"month"`
	AvgTemp float64 `json:"avgTemp"`
}

// CitySeries is a city's monthly averages ordered by month ascending.
// Months without data are absent, so a series may hold fewer than 12 points.
type CitySeries struct {
	City   string           `json:"city"`
	Values []MonthlyAverage `json:"values"`
}

// Upto returns the averages with Month <= maxMonth. The receiver is not modified.
func (s CitySeries) Upto(maxMonth int) []MonthlyAverage {
	out := make([]MonthlyAverage, 0, len(s.Values))
	for _, v := range s.Values {
		if v.Month > maxMonth {
			break
		}
		out = append(out, v)
	}
	return out
}
