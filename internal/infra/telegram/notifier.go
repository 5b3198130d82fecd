package telegram

import (
	"context"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/infra/logger"

	"github.com/sirupsen/logrus"
)

const notifyTimeout = 10 * time.Second

// LogNotifier reports cycle results to the application log only.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logger.Log.WithField("component", "notifier")}
}

func (n *LogNotifier) Notify(message string) {
	n.log.Info(message)
}

// ChannelNotifier mirrors cycle results as text messages to the
// delivery channel itself, the daemon's stand-in for on-screen toasts.
// Sends run in their own goroutine with a bounded timeout; failures are
// logged and swallowed so the notifier never blocks or fails a cycle.
type ChannelNotifier struct {
	client   *Client
	snapshot func() (delivery.Config, error)
	log      *logrus.Entry
}

func NewChannelNotifier(client *Client, snapshot func() (delivery.Config, error)) *ChannelNotifier {
	return &ChannelNotifier{
		client:   client,
		snapshot: snapshot,
		log:      logger.Log.WithField("component", "notifier"),
	}
}

func (n *ChannelNotifier) Notify(message string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		cfg, err := n.snapshot()
		if err != nil {
			n.log.Warnf("notify skipped, config snapshot failed: %v", err)
			return
		}
		if err := n.client.SendMessage(ctx, cfg, message); err != nil {
			n.log.Warnf("notify via channel failed: %v", err)
		}
	}()
}
