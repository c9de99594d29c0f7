package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Job is one recurring scrape task. Run is invoked once at startup and then
// on every tick.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error

	inFlight atomic.Bool
}

type Scheduler struct {
	jobs []*Job
	log  *slog.Logger
	wg   sync.WaitGroup
}

func New(log *slog.Logger) *Scheduler {
	return &Scheduler{log: log}
}

func (s *Scheduler) Add(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.jobs = append(s.jobs, &Job{Name: name, Interval: interval, Run: run})
}

// Start launches one goroutine per job. Jobs are independent: a panic or
// error in one never cancels its own schedule or affects the others.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
}

// Wait blocks until the context passed to Start is done and all job loops
// have returned.
func (s *Scheduler) Wait() { s.wg.Wait() }

func (s *Scheduler) loop(ctx context.Context, job *Job) {
	defer s.wg.Done()

	s.runOnce(ctx, job)

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job *Job) {
	// Skip the tick if the previous run is still going; a slow upstream
	// must not pile up overlapping runs of the same job.
	if !job.inFlight.CompareAndSwap(false, true) {
		s.log.Warn("job still running, skipping tick", "job", job.Name)
		return
	}
	defer job.inFlight.Store(false)

	runID := uuid.NewString()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked", "job", job.Name, "run_id", runID, "panic", r)
		}
	}()

	s.log.Info("job started", "job", job.Name, "run_id", runID)
	if err := job.Run(ctx); err != nil {
		s.log.Error("job failed", "job", job.Name, "run_id", runID, "err", err)
		return
	}
	s.log.Info("job finished", "job", job.Name, "run_id", runID, "took_ms", time.Since(start).Milliseconds())
}
