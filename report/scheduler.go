package report

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/rustyeddy/fintrack/logger"
)

// Scheduler ticks the monthly generator once a day. The tick itself is cheap:
// the generator re-checks the calendar, so running the tick on a day other
// than the 1st is a no-op.
type Scheduler struct {
	cron *cron.Cron
	gen  *Generator
}

// NewScheduler registers the daily tick with the given 6-field cron spec.
func NewScheduler(gen *Generator, spec string) (*Scheduler, error) {
	s := &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		gen:  gen,
	}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("register report task: %w", err)
	}
	return s, nil
}

// Start begins the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("report scheduler started")
}

// Stop halts the cron loop.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	logger.Info("report scheduler stopped")
}

// RunNow executes the tick immediately (process-start trigger).
func (s *Scheduler) RunNow() { s.tick() }

func (s *Scheduler) tick() {
	path, generated, err := s.gen.MaybeGenerate()
	if err != nil {
		logger.Error("monthly report failed", logger.Pair("err", err.Error()))
		return
	}
	if generated {
		logger.Info("monthly report generated", logger.Pair("path", path))
	}
}
