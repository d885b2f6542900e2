package config

import (
	"log/slog"
	"time"
)

type LogLeveler string

func (l LogLeveler) Level() slog.Level {
	var level slog.Level

	_ = level.UnmarshalText([]byte(l))

	return level
}

// Config holds the console configuration.
type Config struct {
	LogLevel LogLeveler `mapstructure:"LOG_LEVEL"`
	Backend  Backend    `mapstructure:",squash"`
	Monitor  Monitor    `mapstructure:",squash"`
	Stub     Stub       `mapstructure:",squash"`
}

// Backend points the console at the Skyline API server.
type Backend struct {
	BaseURL string        `mapstructure:"BACKEND_BASE_URL"`
	Timeout time.Duration `mapstructure:"BACKEND_TIMEOUT"`
}

// Monitor controls the dashboard polling loop and the stress re-poll.
type Monitor struct {
	PollInterval time.Duration `mapstructure:"MONITOR_POLL_INTERVAL"`
	RepollDelay  time.Duration `mapstructure:"MONITOR_REPOLL_DELAY"`
}

// Stub configures the local fixture backend.
type Stub struct {
	Port    int           `mapstructure:"STUB_PORT"`
	Timeout time.Duration `mapstructure:"STUB_TIMEOUT"`
}
