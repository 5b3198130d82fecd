package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/app"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/schedule"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/config"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

// CaptureScheduler owns the 1-second tick loop that counts down to the
// next capture instant and fires one cycle per instant reached.
//
// Firing is rollover detection: the countdown is recomputed on every
// tick, and a strict increase means the previous target instant was
// just passed. The rule holds even when ticks are delayed, since any
// elapsed target shows up as a larger remaining value on the next
// tick. A suspension spanning more than one full day collapses the
// missed instants into a single firing.
type CaptureScheduler struct {
	runner app.CycleRunner
	store  config.Store
	board  *app.StatusBoard
	log    *logrus.Entry

	interval time.Duration
	now      func() time.Time

	lastRemaining int
	busy          atomic.Bool
	triggers      chan delivery.Config
	quit          chan struct{}
	wg            sync.WaitGroup
}

func New(runner app.CycleRunner, store config.Store, board *app.StatusBoard) *CaptureScheduler {
	return &CaptureScheduler{
		runner:        runner,
		store:         store,
		board:         board,
		log:           logger.Log.WithField("component", "scheduler"),
		interval:      time.Second,
		now:           time.Now,
		lastRemaining: -1,
		triggers:      make(chan delivery.Config, 1),
		quit:          make(chan struct{}),
	}
}

// Start launches the tick loop and the single cycle worker.
func (s *CaptureScheduler) Start() {
	s.wg.Add(2)
	go s.tickLoop()
	go s.workLoop()
	s.log.Info("capture scheduler started")
}

func (s *CaptureScheduler) tickLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case <-ticker.C:
			s.step(s.now())
		}
	}
}

// step recomputes the countdown, publishes it, and decides whether the
// previous target instant was just passed.
func (s *CaptureScheduler) step(now time.Time) {
	snap, err := s.store.Snapshot()
	if err != nil {
		s.log.Errorf("config snapshot failed: %v", err)
		return
	}

	remaining := snap.Schedule.SecondsUntil(now)
	fired := s.lastRemaining >= 0 && remaining > s.lastRemaining
	s.lastRemaining = remaining

	// The countdown is not published over the states of a running
	// cycle; it resumes on the first tick after the cycle finishes.
	if !s.busy.Load() {
		s.board.Set(cycle.Status{
			State:            cycle.StateCountingDown,
			SecondsRemaining: remaining,
			Message:          "next capture " + schedule.FormatRemaining(remaining),
			NextCaptureAt:    snap.Schedule.NextOccurrence(now),
		})
	}

	if fired {
		s.log.Infof("capture instant %s reached", snap.Schedule)
		s.Trigger(snap.Delivery)
	}
}

// Trigger enqueues a cycle with the given delivery snapshot; the manual
// capture endpoint uses it too. Cycles are serialized by the single
// worker: a trigger arriving while a cycle runs waits in the buffer, at
// most one may wait, extras are dropped with a warning.
func (s *CaptureScheduler) Trigger(cfg delivery.Config) bool {
	select {
	case s.triggers <- cfg:
		return true
	default:
		s.log.Warn("capture trigger dropped, a cycle is running and another is already queued")
		return false
	}
}

func (s *CaptureScheduler) workLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.quit:
			return
		case cfg := <-s.triggers:
			s.busy.Store(true)
			out := s.runner.Run(context.Background(), cfg)
			s.busy.Store(false)
			s.log.Infof("capture cycle finished: %s", out.Result)
		}
	}
}

// Stop halts the tick loop and the worker. An in-flight cycle is left
// to run to completion before Stop returns; only future ticks are
// suppressed.
func (s *CaptureScheduler) Stop() {
	s.log.Info("stopping capture scheduler...")
	close(s.quit)
	s.wg.Wait()
	s.log.Info("capture scheduler stopped")
}
