package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/sirupsen/logrus"
	"go.uber.org/atomic"

	"github.com/i474232898/temperature-chart/internal/dashboard"
)

// Loader is the part of the dashboard service the scheduler drives.
type Loader interface {
	Load(ctx context.Context) (dashboard.LoadResult, error)
}

// Scheduler periodically reloads the dataset.
type Scheduler struct {
	scheduler *gocron.Scheduler
	loader    Loader
	interval  time.Duration
	timeout   time.Duration

	running *atomic.Bool
	runs    *atomic.Int64
}

// New creates a new Scheduler.
func New(interval time.Duration, loader Loader) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		loader:    loader,
		interval:  interval,
		timeout:   30 * time.Second,
		running:   atomic.NewBool(false),
		runs:      atomic.NewInt64(0),
	}
}

// Start schedules the reload job and starts the underlying scheduler.
// The first run happens one interval from now; the initial load is the caller's.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Info("scheduler: reload interval not set; dataset is loaded once")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.Run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Run performs one reload unless another is still in progress.
func (s *Scheduler) Run() {
	if !s.running.CAS(false, true) {
		log.Warn("scheduler: previous reload still running; skipping")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.loader.Load(ctx)
	s.runs.Inc()
	if err != nil {
		log.Errorf("scheduler: reload failed; keeping previous chart state: %v", err)
		return
	}
	if res.Changed {
		log.WithField("version", res.State.Version).Info("scheduler: dataset reloaded")
	}
}

// Runs returns how many reloads have been attempted.
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
