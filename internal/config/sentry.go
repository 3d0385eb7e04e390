package config

type Sentry struct {
	DSN         string `env:"DSN"`
	Environment string `env:"ENVIRONMENT"`
}
