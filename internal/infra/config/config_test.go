package config

import (
	"testing"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHANNEL", "@daily_photos")
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("TELEGRAM_CHANNEL", "@daily_photos")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}

func TestLoad_MissingChannel(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHANNEL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_CHANNEL")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("CAPTURE_TIME", "")
	t.Setenv("TELEGRAM_API_URL", "")
	t.Setenv("JOIN_LINK", "")
	t.Setenv("NOTIFY_TELEGRAM", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("CLEANUP_CRON_SPEC", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENVIRONMENT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, schedule.Schedule{Hour: 12, Minute: 0}, cfg.CaptureTime)
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIURL)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "0 3 * * *", cfg.CleanupCronSpec)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.NotifyTelegram)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("CAPTURE_TIME", "8:30")
	t.Setenv("TELEGRAM_API_URL", "http://localhost:8081")
	t.Setenv("JOIN_LINK", "https://t.me/+invite")
	t.Setenv("NOTIFY_TELEGRAM", "true")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://localhost/chrono")
	t.Setenv("ENVIRONMENT", "Production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, schedule.Schedule{Hour: 8, Minute: 30}, cfg.CaptureTime)
	assert.Equal(t, "http://localhost:8081", cfg.TelegramAPIURL)
	assert.Equal(t, "https://t.me/+invite", cfg.JoinLink)
	assert.True(t, cfg.NotifyTelegram)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "postgres://localhost/chrono", cfg.DatabaseURL)
	assert.Equal(t, "production", cfg.Environment)
}

func TestLoad_InvalidValues(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "capture time", key: "CAPTURE_TIME", value: "25:00"},
		{name: "http timeout", key: "HTTP_TIMEOUT", value: "soon"},
		{name: "notify flag", key: "NOTIFY_TELEGRAM", value: "maybe"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestEnvStore_SnapshotReadsFreshValues(t *testing.T) {
	setRequired(t)
	t.Setenv("CAPTURE_TIME", "12:00")

	cfg, err := Load()
	require.NoError(t, err)
	store := NewEnvStore(cfg)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, schedule.Schedule{Hour: 12, Minute: 0}, snap.Schedule)
	assert.Equal(t, "123:abc", snap.Delivery.Token)
	assert.Equal(t, "@daily_photos", snap.Delivery.ChatID)

	// Settings edited between cycles take effect on the next snapshot.
	t.Setenv("CAPTURE_TIME", "18:15")
	t.Setenv("TELEGRAM_CHANNEL", "@other_channel")

	snap, err = store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, schedule.Schedule{Hour: 18, Minute: 15}, snap.Schedule)
	assert.Equal(t, "@other_channel", snap.Delivery.ChatID)
}

func TestEnvStore_InvalidEditReported(t *testing.T) {
	setRequired(t)
	cfg, err := Load()
	require.NoError(t, err)

	store := NewEnvStore(cfg)
	t.Setenv("CAPTURE_TIME", "garbage")

	_, err = store.Snapshot()
	assert.ErrorIs(t, err, schedule.ErrInvalidTime)
}
