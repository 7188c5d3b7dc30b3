package weather

import (
	"math"
	"sort"
)

// monthlySum accumulates the finite temperatures of one (city, month) group.
type monthlySum struct {
	sum   float64
	count int
}

// AggregateMonthly groups records by (city, month) and averages their temperatures.
// Cities appear in order of first appearance; each series is sorted by month.
// Non-finite temperatures are left out of the mean, and a group without any finite
// value averages to NaN.
func AggregateMonthly(records []RawRecord) []CitySeries {
	var order []string
	groups := make(map[string]map[int]*monthlySum)

	for _, r := range records {
		months, ok := groups[r.City]
		if !ok {
			months = make(map[int]*monthlySum)
			groups[r.City] = months
			order = append(order, r.City)
		}

		m := r.Month()
		acc, ok := months[m]
		if !ok {
			acc = &monthlySum{}
			months[m] = acc
		}

		if math.IsNaN(r.Temp) || math.IsInf(r.Temp, 0) {
			continue
		}
		acc.sum += r.Temp
		acc.count++
	}

	series := make([]CitySeries, 0, len(order))
	for _, city := range order {
		months := groups[city]

		values := make([]MonthlyAverage, 0, len(months))
		for m, acc := range months {
			avg := math.NaN()
			if acc.count > 0 {
				avg = acc.sum / float64(acc.count)
			}
			values = append(values, MonthlyAverage{Month: m, AvgTemp: avg})
		}
		sort.Slice(values, func(i, j int) bool { return values[i].Month < values[j].Month })

		series = append(series, CitySeries{City: city, Values: values})
	}

	return series
}

// MaxAverage returns the largest finite average across all series,
// or NaN when there is none.
func MaxAverage(series []CitySeries) float64 {
	max := math.NaN()
	for _, s := range series {
		for _, v := range s.Values {
			if math.IsNaN(v.AvgTemp) || math.IsInf(v.AvgTemp, 0) {
				continue
			}
			if math.IsNaN(max) || v.AvgTemp > max {
				max = v.AvgTemp
			}
		}
	}
	return max
}
