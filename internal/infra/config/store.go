package config

import (
	"fmt"
	"os"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/delivery"
	"github.com/ivanlukomskiy/chrono-capture/internal/domain/schedule"
)

// Snapshot is the per-cycle view of the mutable settings. A cycle keeps
// the snapshot it was triggered with; edits only affect later cycles.
type Snapshot struct {
	Schedule schedule.Schedule
	Delivery delivery.Config
}

// Store yields a fresh settings snapshot per call so that edits take
// effect on the next cycle without restarting the daemon.
type Store interface {
	Snapshot() (Snapshot, error)
}

// EnvStore re-reads the environment on every call. godotenv merges the
// .env file into the environment once at startup; values injected into
// the process environment afterwards win over the startup defaults.
type EnvStore struct {
	defaults *AppConfig
}

func NewEnvStore(cfg *AppConfig) *EnvStore {
	return &EnvStore{defaults: cfg}
}

func (s *EnvStore) Snapshot() (Snapshot, error) {
	snap := Snapshot{
		Schedule: s.defaults.CaptureTime,
		Delivery: delivery.Config{
			Token:    s.defaults.TelegramToken,
			ChatID:   s.defaults.TelegramChannel,
			JoinLink: s.defaults.JoinLink,
		},
	}

	if v := os.Getenv("CAPTURE_TIME"); v != "" {
		parsed, err := schedule.Parse(v)
		if err != nil {
			return Snapshot{}, fmt.Errorf("invalid CAPTURE_TIME: %w", err)
		}
		snap.Schedule = parsed
	}
	if v := os.Getenv("TELEGRAM_TOKEN"); v != "" {
		snap.Delivery.Token = v
	}
	if v := os.Getenv("TELEGRAM_CHANNEL"); v != "" {
		snap.Delivery.ChatID = v
	}
	if v := os.Getenv("JOIN_LINK"); v != "" {
		snap.Delivery.JoinLink = v
	}

	return snap, nil
}
