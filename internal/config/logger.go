package config

import "log/slog"

const (
	LoggerFormatText = "text"
	LoggerFormatJSON = "json"
)

type Logger struct {
	Level  slog.Level `env:"LEVEL" envDefault:"INFO"`
	Format string     `env:"FORMAT" envDefault:"text"`
}
