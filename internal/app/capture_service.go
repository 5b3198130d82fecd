package app

import (
	"context"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/capture"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/cycle"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/metrics"

	"github.com/sirupsen/logrus"
)

// CycleRunner executes one end-to-end capture-and-deliver attempt.
type CycleRunner interface {
	Run(ctx context.Context, cfg delivery.Config) cycle.Outcome
}

// CycleService wires the capture provider, the delivery client, the
// notification sinks and the journal into a single cycle.
type CycleService struct {
	provider capture.Provider
	client   delivery.Client
	notifier delivery.Notifier
	journal  cycle.Repository
	board    *StatusBoard
	log      *logrus.Entry
	now      func() time.Time
}

func NewCycleService(
	provider capture.Provider,
	client delivery.Client,
	notifier delivery.Notifier,
	journal cycle.Repository,
	board *StatusBoard,
) *CycleService {
	return &CycleService{
		provider: provider,
		client:   client,
		notifier: notifier,
		journal:  journal,
		board:    board,
		log:      logger.Log.WithField("component", "cycle"),
		now:      time.Now,
	}
}

// Run performs exactly one capture attempt and, if it yields an image,
// exactly one delivery attempt. There are no retries within a cycle;
// the next chance to try again is the next scheduled instant.
func (s *CycleService) Run(ctx context.Context, cfg delivery.Config) cycle.Outcome {
	startedAt := s.now()
	s.board.Set(cycle.Status{State: cycle.StateCapturing, Message: "capturing image"})

	att, err := s.provider.Capture(ctx)
	metrics.CaptureDuration.Observe(s.now().Sub(startedAt).Seconds())
	if err != nil {
		s.log.Errorf("capture failed: %v", err)
		return s.finish(ctx, startedAt, cycle.CaptureFailed(err))
	}
	defer func() {
		if err := att.Discard(); err != nil {
			s.log.Warnf("could not remove scratch image %s: %v", att.Path, err)
		}
	}()

	s.board.Set(cycle.Status{State: cycle.StateUploading, Message: "uploading image"})
	uploadStart := s.now()
	_, err = s.client.SendPhoto(ctx, cfg, att)
	metrics.DeliveryDuration.Observe(s.now().Sub(uploadStart).Seconds())
	if err != nil {
		s.log.Errorf("delivery failed: %v", err)
		return s.finish(ctx, startedAt, cycle.DeliveryFailed(err))
	}

	return s.finish(ctx, startedAt, cycle.Succeeded())
}

// finish reports the outcome everywhere it is observed: status board,
// notification sinks, metrics and the journal. Journal errors are
// logged and swallowed.
func (s *CycleService) finish(ctx context.Context, startedAt time.Time, out cycle.Outcome) cycle.Outcome {
	finishedAt := s.now()

	st := cycle.Status{State: cycle.StateSucceeded, Message: "image sent"}
	notice := "Image sent"
	detail := ""
	if !out.OK() {
		st = cycle.Status{State: cycle.StateFailed, Message: "cycle failed", Reason: out.Err.Error()}
		detail = out.Err.Error()
		if out.Result == cycle.ResultCaptureFailed {
			notice = "Failed to take an image"
		} else {
			notice = "Failed to send an image"
		}
	}
	s.board.Finish(st, out)
	s.notifier.Notify(notice)
	metrics.CyclesTotal.WithLabelValues(string(out.Result)).Inc()

	rec := &cycle.Record{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Result:     out.Result,
		Detail:     detail,
	}
	if err := s.journal.Create(ctx, rec); err != nil {
		s.log.Warnf("journal write failed: %v", err)
	}

	s.log.Infof("cycle finished in %s: %s", finishedAt.Sub(startedAt).Round(time.Millisecond), out.Describe())
	return out
}
