package delivery

import (
	"context"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/capture"
)

// Config is the destination snapshot a cycle delivers with. It is read
// fresh from the config store when a cycle is triggered and never
// mutated while the cycle is in flight.
type Config struct {
	Token    string
	ChatID   string
	JoinLink string
}

// Client transmits a captured image or a text notice to the remote
// endpoint. This decouples the cycle orchestration from the concrete
// Bot API transport.
type Client interface {
	// SendPhoto uploads the attachment to the configured chat and
	// returns the raw response body on success.
	SendPhoto(ctx context.Context, cfg Config, att *capture.Attachment) (string, error)
	// SendMessage posts a text-only notice to the configured chat.
	SendMessage(ctx context.Context, cfg Config, text string) error
}

// Notifier is a fire-and-forget observer of cycle results. It must
// never block and never fails the cycle.
type Notifier interface {
	Notify(message string)
}

// MultiNotifier fans a notification out to every sink.
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(message string) {
	for _, n := range m {
		n.Notify(message)
	}
}
