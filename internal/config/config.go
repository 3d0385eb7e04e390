package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const EnvironmentDevelopment = "development"

type Config struct {
	Environment  string       `env:"ENVIRONMENT" envDefault:"production"`
	Logger       Logger       `envPrefix:"LOGGER_"`
	HTTP         HTTP         `envPrefix:"HTTP_"`
	Storage      Storage      `envPrefix:"STORAGE_"`
	Realtime     Realtime     `envPrefix:"REALTIME_"`
	TaskRunner   TaskRunner   `envPrefix:"TASK_RUNNER_"`
	Integrations Integrations `envPrefix:"INTEGRATIONS_"`
	Sentry       Sentry       `envPrefix:"SENTRY_"`
}

func (c *Config) Development() bool {
	return c.Environment == EnvironmentDevelopment
}

func Parse() (*Config, error) {
	return ParseWithEnvironment(nil)
}

// ParseWithEnvironment parses the configuration from the given variables
// instead of the process environment when environment is not nil.
func ParseWithEnvironment(environment map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      "PRODUCTHUB_",
		Environment: environment,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
