package chart

import (
	"errors"
	"fmt"
	"strings"
)

// AllCities is the filter value selecting every city.
const AllCities = "all"

// ErrUnknownCity is returned when a filter names a city absent from the dataset.
var ErrUnknownCity = errors.New("unknown city")

// Selection is the user-controlled part of a render: which cities, up to which month.
type Selection struct {
	Cities   map[string]struct{}
	MaxMonth int
}

// Has reports whether city is selected.
func (s Selection) Has(city string) bool {
	_, ok := s.Cities[city]
	return ok
}

// SelectAll selects every city of the state.
func SelectAll(state *State, maxMonth int) Selection {
	return SelectCities(maxMonth, state.Cities()...)
}

// SelectCities selects the given cities.
func SelectCities(maxMonth int, cities ...string) Selection {
	set := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		set[c] = struct{}{}
	}
	return Selection{Cities: set, MaxMonth: maxMonth}
}

// ParseCityFilter turns a dropdown value into a selection: "all" (or empty)
// selects every city, anything else selects that single city.
func ParseCityFilter(state *State, value string, maxMonth int) (Selection, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, AllCities) {
		return SelectAll(state, maxMonth), nil
	}
	if !state.HasCity(value) {
		return Selection{}, fmt.Errorf("%w: %s", ErrUnknownCity, value)
	}
	return SelectCities(maxMonth, value), nil
}

// MonthLabel is the caption shown next to the month slider.
func MonthLabel(maxMonth int) string {
	if maxMonth >= LastMonth {
		return "All Months"
	}
	return fmt.Sprintf("Months 1–%d", maxMonth)
}

// Option is one entry of the city dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CityOptions returns "All Cities" followed by each city in dataset order.
func CityOptions(state *State) []Option {
	opts := []Option{{Value: AllCities, Label: "All Cities"}}
	for _, c := range state.Cities() {
		opts = append(opts, Option{Value: c, Label: c})
	}
	return opts
}
