package revoke

import (
	"context"
	"sync"
	"time"

	"github.com/plateful/authcore/internal/logging"
)

// Sweeper runs Registry.Sweep on a fixed interval so registry memory is
// bounded by the revocations of one token lifetime window, not by process
// uptime.
type Sweeper struct {
	registry Registry
	interval time.Duration
	log      logging.Logger
	now      func() time.Time

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewSweeper builds a sweeper; Start must be called to begin sweeping.
// interval <= 0 falls back to one hour, one token lifetime.
func NewSweeper(registry Registry, interval time.Duration, log logging.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Sweeper{
		registry: registry,
		interval: interval,
		log:      log,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start launches the background sweep loop.
func (s *Sweeper) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce()
		case <-s.done:
			return
		}
	}
}

func (s *Sweeper) sweepOnce() {
	ctx := context.Background()
	removed, err := s.registry.Sweep(ctx, s.now())
	if err != nil {
		s.log.Error(ctx, "revocation sweep failed", "error", err)
		return
	}
	if removed > 0 {
		s.log.Debug(ctx, "revocation sweep completed", "removed", removed)
	}
}

// Stop halts the loop and waits for an in-flight sweep to finish. Safe to
// call more than once.
func (s *Sweeper) Stop() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
}
