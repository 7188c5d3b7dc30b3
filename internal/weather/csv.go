package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/temperature-chart/internal/common"
)

// Column names expected in the input header.
const (
	ColumnDate = "date"
	ColumnCity = "city"
	ColumnTemp = "actual_mean_temp"
)

var (
	// ErrMissingColumn is returned when the header lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrEmptyInput is returned when the input has no header row.
	ErrEmptyInput = errors.New("empty csv input")
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006-1-2",
}

// DecodeStats describes what DecodeCSV did with the input rows.
type DecodeStats struct {
	Rows        int `json:"rows"`
	SkippedRows int `json:"skippedRows"`
	NaNTemps    int `json:"nanTemps"`
}

// DecodeCSV reads daily records from a CSV with a header row containing at least
// date, city and actual_mean_temp. Temperatures that do not parse become NaN.
// Rows with an unparseable date or too few fields are skipped and counted.
func DecodeCSV(r io.Reader) ([]RawRecord, DecodeStats, error) {
	var stats DecodeStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, ErrEmptyInput
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	dateIdx := common.IndexFold(header, ColumnDate)
	cityIdx := common.IndexFold(header, ColumnCity)
	tempIdx := common.IndexFold(header, ColumnTemp)
	for i, idx := range []int{dateIdx, cityIdx, tempIdx} {
		if idx < 0 {
			return nil, stats, fmt.Errorf("%w: %s", ErrMissingColumn, []string{ColumnDate, ColumnCity, ColumnTemp}[i])
		}
	}
	width := max(dateIdx, cityIdx, tempIdx) + 1

	var records []RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, fmt.Errorf("read csv row %d: %w", stats.Rows+1, err)
		}
		stats.Rows++

		if len(row) < width {
			stats.SkippedRows++
			continue
		}

		date, ok := parseDate(row[dateIdx])
		if !ok {
			stats.SkippedRows++
			continue
		}

		temp := parseTemp(row[tempIdx])
		if math.IsNaN(temp) {
			stats.NaNTemps++
		}

		records = append(records, RawRecord{
			Date: date,
			City: strings.TrimSpace(row[cityIdx]),
			Temp: temp,
		})
	}

	return records, stats, nil
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

func parseTemp(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
