package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Probe reports whether a dependency is usable
type Probe func(ctx context.Context) error

// Check tracks the last outcome of one probe
type Check struct {
	name    string
	probe   Probe
	healthy atomic.Bool

	mu      sync.Mutex
	lastErr string
	checked time.Time
}

func NewCheck(name string, probe Probe) *Check {
	return &Check{name: name, probe: probe}
}

func (c *Check) Name() string { return c.name }

// Healthy is false until the first successful run
func (c *Check) Healthy() bool { return c.healthy.Load() }

// Status is "ok", "unknown" before the first run, or the last error
func (c *Check) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.checked.IsZero():
		return "unknown"
	case c.lastErr != "":
		return c.lastErr
	}
	return "ok"
}

// Run executes the probe once and records the result
func (c *Check) Run(ctx context.Context) {
	err := c.probe(ctx)

	c.mu.Lock()
	c.checked = time.Now()
	c.lastErr = ""
	if err != nil {
		c.lastErr = err.Error()
	}
	c.mu.Unlock()

	was := c.healthy.Swap(err == nil)
	switch {
	case err != nil && was:
		slog.Warn("[Scheduler] Health check failing", slog.String("check", c.name), slog.String("error", err.Error()))
	case err == nil && !was:
		slog.Info("[Scheduler] Health check passing", slog.String("check", c.name))
	}
}

// Config holds scheduler configuration
type Config struct {
	Timezone       string
	HealthInterval time.Duration
	ProbeTimeout   time.Duration
}

// Scheduler runs the periodic health checks
type Scheduler struct {
	scheduler gocron.Scheduler
	checks    []*Check
	cfg       Config
}

func New(cfg Config, checks ...*Check) (*Scheduler, error) {
	tz, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		tz = time.UTC
	}
	if cfg.HealthInterval <= 0 {
		cfg.HealthInterval = time.Minute
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 10 * time.Second
	}

	s, err := gocron.NewScheduler(gocron.WithLocation(tz))
	if err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: s, checks: checks, cfg: cfg}, nil
}

// Start registers one job per check, each running immediately and then on
// the configured interval
func (s *Scheduler) Start() error {
	for _, c := range s.checks {
		_, err := s.scheduler.NewJob(
			gocron.DurationJob(s.cfg.HealthInterval),
			gocron.NewTask(s.runCheck, c),
			gocron.WithName("health-"+c.Name()),
			gocron.WithStartAt(gocron.WithStartImmediately()),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return err
		}
	}

	s.scheduler.Start()
	slog.Info("[Scheduler] Started", slog.Int("checks", len(s.checks)), slog.Duration("interval", s.cfg.HealthInterval))
	return nil
}

func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *Scheduler) Checks() []*Check {
	return s.checks
}

func (s *Scheduler) runCheck(c *Check) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ProbeTimeout)
	defer cancel()
	c.Run(ctx)
}
