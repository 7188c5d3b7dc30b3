package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/i474232898/temperature-chart/internal/chart"
	"github.com/i474232898/temperature-chart/internal/dashboard"
)

type fakeLoader struct {
	calls *atomic.Int32
	err   error
	block chan struct{}
}

func (f *fakeLoader) Load(ctx context.Context) (dashboard.LoadResult, error) {
	f.calls.Inc()
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return dashboard.LoadResult{}, f.err
	}
	return dashboard.LoadResult{State: chart.NewState(nil, time.Now(), chart.LoadMeta{}), Changed: true}, nil
}

func TestRunCallsLoader(t *testing.T) {
	loader := &fakeLoader{calls: atomic.NewInt32(0)}
	s := New(time.Minute, loader)

	s.Run()
	s.Run()

	assert.EqualValues(t, 2, loader.calls.Load())
	assert.EqualValues(t, 2, s.Runs())
}

func TestRunSurvivesLoadError(t *testing.T) {
	loader := &fakeLoader{calls: atomic.NewInt32(0), err: errors.New("source down")}
	s := New(time.Minute, loader)

	s.Run()
	assert.EqualValues(t, 1, s.Runs())
}

func TestRunSkipsOverlap(t *testing.T) {
	loader := &fakeLoader{calls: atomic.NewInt32(0), block: make(chan struct{})}
	s := New(time.Minute, loader)

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()
	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)

	s.Run()
	close(loader.block)
	<-done

	assert.EqualValues(t, 1, loader.calls.Load())
}

func TestStartWithoutInterval(t *testing.T) {
	loader := &fakeLoader{calls: atomic.NewInt32(0)}
	s := New(0, loader)

	require.NoError(t, s.Start())
	s.Stop()
	assert.EqualValues(t, 0, loader.calls.Load())
}

func TestStartSchedulesReloads(t *testing.T) {
	loader := &fakeLoader{calls: atomic.NewInt32(0)}
	s := New(time.Second, loader)

	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return loader.calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}
