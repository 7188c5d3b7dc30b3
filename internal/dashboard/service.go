package dashboard

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/i474232898/temperature-chart/internal/chart"
	"github.com/i474232898/temperature-chart/internal/weather"
)

// Service loads the dataset, builds chart states and answers render requests.
type Service struct {
	source Source
	store  Store
	now    func() time.Time

	// mu serialises loads so two reloads never race on lastSum.
	mu       sync.Mutex
	lastSum  uint64
	hasState bool

	loads   *atomic.Int64
	skipped *atomic.Int64
}

// NewService creates a new Service.
func NewService(source Source, store Store) *Service {
	return &Service{
		source:  source,
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
		loads:   atomic.NewInt64(0),
		skipped: atomic.NewInt64(0),
	}
}

// LoadResult reports what a Load did.
type LoadResult struct {
	State   *chart.State
	Changed bool
}

// Load reads the source, aggregates it and stores a fresh chart state.
// When the content is byte-identical to the last load the current state is kept,
// so versions and colours do not churn on periodic reloads.
func (s *Service) Load(ctx context.Context) (LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rc, err := s.source.Open(ctx)
	if err != nil {
		return LoadResult{}, fmt.Errorf("open source %s: %w", s.source.Name(), err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return LoadResult{}, fmt.Errorf("read source %s: %w", s.source.Name(), err)
	}

	sum := xxhash.Sum64(data)
	if s.hasState && sum == s.lastSum {
		if current, err := s.store.Current(); err == nil {
			s.skipped.Inc()
			log.WithField("source", s.source.Name()).Debug("dataset unchanged; keeping current chart state")
			return LoadResult{State: current}, nil
		}
	}

	records, stats, err := weather.DecodeCSV(bytes.NewReader(data))
	if err != nil {
		return LoadResult{}, fmt.Errorf("decode %s: %w", s.source.Name(), err)
	}

	series := weather.AggregateMonthly(records)
	state := chart.NewState(series, s.now(), chart.LoadMeta{
		Source:   s.source.Name(),
		Checksum: sum,
		Decode:   stats,
	})
	s.store.Save(state)
	s.lastSum = sum
	s.hasState = true
	s.loads.Inc()

	fields := log.Fields{
		"source":  s.source.Name(),
		"version": state.Version,
		"cities":  len(series),
		"rows":    stats.Rows,
		"skipped": stats.SkippedRows,
	}
	if stats.SkippedRows > 0 || stats.NaNTemps > 0 {
		log.WithFields(fields).WithField("nanTemps", stats.NaNTemps).Warn("dataset loaded with unusable values")
	} else {
		log.WithFields(fields).Info("dataset loaded")
	}

	return LoadResult{State: state, Changed: true}, nil
}

// Loads returns how many loads produced a new state.
func (s *Service) Loads() int64 {
	return s.loads.Load()
}

// UnchangedLoads returns how many loads found the dataset unchanged.
func (s *Service) UnchangedLoads() int64 {
	return s.skipped.Load()
}

// Current delegates to the underlying store.
func (s *Service) Current() (*chart.State, error) {
	return s.store.Current()
}

// History delegates to the underlying store.
func (s *Service) History(from, to time.Time) ([]*chart.State, error) {
	return s.store.Range(from, to)
}

// Select resolves a dropdown value and month bound against the current state.
func (s *Service) Select(city string, maxMonth int) (*chart.State, chart.Selection, error) {
	state, err := s.store.Current()
	if err != nil {
		return nil, chart.Selection{}, err
	}
	sel, err := chart.ParseCityFilter(state, city, maxMonth)
	if err != nil {
		return nil, chart.Selection{}, err
	}
	return state, sel, nil
}

// Render draws the current chart for the given filter into w.
func (s *Service) Render(w io.Writer, city string, maxMonth int) (*chart.State, error) {
	state, sel, err := s.Select(city, maxMonth)
	if err != nil {
		return nil, err
	}
	return state, chart.Render(w, state, sel)
}
