package chart

import (
	"math"
)

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// LinearScale maps a continuous domain onto a continuous range.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// NewLinearScale creates a scale mapping [d0,d1] onto [r0,r1].
func NewLinearScale(d0, d1, r0, r1 float64) LinearScale {
	return LinearScale{Domain: [2]float64{d0, d1}, Range: [2]float64{r0, r1}}
}

// Map converts a domain value to its range value. A degenerate domain maps
// everything to the middle of the range.
func (s LinearScale) Map(v float64) float64 {
	d0, d1 := s.Domain[0], s.Domain[1]
	r0, r1 := s.Range[0], s.Range[1]
	if d1 == d0 {
		return (r0 + r1) / 2
	}
	return r0 + (v-d0)/(d1-d0)*(r1-r0)
}

// Nice extends the domain so both ends land on round tick values.
func (s LinearScale) Nice(count int) LinearScale {
	start, stop := s.Domain[0], s.Domain[1]
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
	for i := 0; i < 10; i++ {
		step := tickIncrement(start, stop, count)
		if step == prestep || step == 0 {
			break
		}
		if step > 0 {
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		} else {
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		}
		prestep = step
	}

	if reversed {
		start, stop = stop, start
	}
	s.Domain = [2]float64{start, stop}
	return s
}

// Ticks returns roughly count round values spanning the domain.
func (s LinearScale) Ticks(count int) []float64 {
	start, stop := s.Domain[0], s.Domain[1]
	if start == stop {
		return []float64{start}
	}
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	inc := tickIncrement(start, stop, count)
	if inc == 0 || math.IsNaN(inc) || math.IsInf(inc, 0) {
		return nil
	}

	var ticks []float64
	if inc > 0 {
		i0, i1 := math.Ceil(start/inc), math.Floor(stop/inc)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i*inc)
		}
	} else {
		inv := -inc
		i0, i1 := math.Ceil(start*inv), math.Floor(stop*inv)
		for i := i0; i <= i1; i++ {
			ticks = append(ticks, i/inv)
		}
	}

	if reversed {
		for l, r := 0, len(ticks)-1; l < r; l, r = l+1, r-1 {
			ticks[l], ticks[r] = ticks[r], ticks[l]
		}
	}
	return ticks
}

// tickIncrement returns a 1, 2 or 5 times power-of-ten step. Steps below one are
// returned as the negated inverse to keep the tick arithmetic exact.
func tickIncrement(start, stop float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	step := (stop - start) / float64(count)
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	power := math.Floor(math.Log10(step))
	e := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case e >= e10:
		factor = 10
	case e >= e5:
		factor = 5
	case e >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
