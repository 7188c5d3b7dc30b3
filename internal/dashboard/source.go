package dashboard

import (
	"context"
	"io"
	"time"

	"github.com/i474232898/temperature-chart/internal/chart"
)

// Source abstracts where the daily weather CSV comes from (local file, remote URL).
type Source interface {
	Name() string
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Store is the contract the in-memory state store must satisfy.
type Store interface {
	Save(state *chart.State)
	Current() (*chart.State, error)
	Range(from, to time.Time) ([]*chart.State, error)
}
