package config

import "time"

type TaskRunner struct {
	URI string `env:"URI,expand" envDefault:"memory://?parallelism=10"`
}

type Integrations struct {
	SyncDelay time.Duration `env:"SYNC_DELAY" envDefault:"2s"`
}
