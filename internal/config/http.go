package config

import "time"

type HTTP struct {
	BaseURL        string        `env:"BASE_URL,expand" envDefault:"/"`
	Address        string        `env:"ADDRESS,expand" envDefault:":5000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	MaxBodySize    int64         `env:"MAX_BODY_SIZE" envDefault:"10485760"`
	CORS           CORS          `envPrefix:"CORS_"`
	RateLimit      RateLimit     `envPrefix:"RATE_LIMIT_"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

type RateLimit struct {
	Enabled      bool          `env:"ENABLED" envDefault:"true"`
	Interval     time.Duration `env:"INTERVAL" envDefault:"100ms"`
	MaxBurst     int           `env:"MAX_BURST" envDefault:"100"`
	CacheSize    int           `env:"CACHE_SIZE" envDefault:"1000"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"15m"`
	TrustHeaders bool          `env:"TRUST_HEADERS" envDefault:"false"`
}
