package config

import "time"

type Storage struct {
	URI   string       `env:"URI,expand" envDefault:"memory://"`
	Seed  Seed         `envPrefix:"SEED_"`
	Cache StorageCache `envPrefix:"CACHE_"`
}

type Seed struct {
	Enabled bool   `env:"ENABLED" envDefault:"true"`
	File    string `env:"FILE,expand"`
}

// StorageCache configures the record cache placed in front of persistent
// stores.
type StorageCache struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Size    int           `env:"SIZE" envDefault:"1000"`
	TTL     time.Duration `env:"TTL" envDefault:"5m"`
}
