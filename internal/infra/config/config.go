package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/schedule"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the daemon.
type AppConfig struct {
	TelegramToken   string
	TelegramChannel string
	TelegramAPIURL  string
	JoinLink        string
	NotifyTelegram  bool

	CaptureTime    schedule.Schedule
	CaptureCommand string
	ScratchDir     string

	DatabaseURL string // empty disables the cycle journal

	HTTPAddr    string
	HTTPTimeout time.Duration

	CleanupCronSpec string
	LogLevel        string
	Environment     string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.TelegramChannel = os.Getenv("TELEGRAM_CHANNEL")
	if cfg.TelegramChannel == "" {
		return nil, fmt.Errorf("TELEGRAM_CHANNEL is not set")
	}

	cfg.TelegramAPIURL = os.Getenv("TELEGRAM_API_URL")
	if cfg.TelegramAPIURL == "" {
		cfg.TelegramAPIURL = "https://api.telegram.org"
	}

	cfg.JoinLink = os.Getenv("JOIN_LINK")

	notifyStr := os.Getenv("NOTIFY_TELEGRAM")
	if notifyStr != "" {
		cfg.NotifyTelegram, err = strconv.ParseBool(notifyStr)
		if err != nil {
			return nil, fmt.Errorf("invalid NOTIFY_TELEGRAM: %w", err)
		}
	}

	captureTime := os.Getenv("CAPTURE_TIME")
	if captureTime == "" {
		captureTime = "12:00"
	}
	cfg.CaptureTime, err = schedule.Parse(captureTime)
	if err != nil {
		return nil, fmt.Errorf("invalid CAPTURE_TIME: %w", err)
	}

	cfg.CaptureCommand = os.Getenv("CAPTURE_COMMAND")
	if cfg.CaptureCommand == "" {
		// {file} is replaced with the target path in the scratch dir.
		cfg.CaptureCommand = "fswebcam -r 1280x720 --no-banner {file}"
	}

	cfg.ScratchDir = os.Getenv("SCRATCH_DIR")
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = os.TempDir() + "/chrono-capture"
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	timeoutStr := os.Getenv("HTTP_TIMEOUT")
	if timeoutStr == "" {
		cfg.HTTPTimeout = 30 * time.Second
	} else {
		cfg.HTTPTimeout, err = time.ParseDuration(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
		}
	}

	cfg.CleanupCronSpec = os.Getenv("CLEANUP_CRON_SPEC")
	if cfg.CleanupCronSpec == "" {
		cfg.CleanupCronSpec = "0 3 * * *" // Default: 03:00 daily
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}
