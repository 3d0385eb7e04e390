package config

import "time"

type Realtime struct {
	Enabled        bool          `env:"ENABLED" envDefault:"true"`
	SendBuffer     int           `env:"SEND_BUFFER" envDefault:"64"`
	WriteTimeout   time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	PingInterval   time.Duration `env:"PING_INTERVAL" envDefault:"30s"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
}
