package config

import (
	"flag"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Addr             string   `env:"RUN_ADDRESS" env-default:"localhost:8080"`
	DatabaseURL      string   `env:"DATABASE_URI"`
	PrivateKey       string   `env:"PRIVATE_KEY" env-default:"privatekey"`
	AuthDisabledURLs []string `env:"AUTH_DISABLED_URLS" env-default:"/login,/register" env-separator:","`

	// Transfer policy lives in configuration so policy changes never touch
	// the orchestrator's control flow.
	MinTransferAmount  int64 `env:"MIN_TRANSFER_AMOUNT" env-default:"10000"`
	TransferMaxRetries int   `env:"TRANSFER_MAX_RETRIES" env-default:"3"`

	SeedDemoData bool `env:"SEED_DEMO_DATA" env-default:"false"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	flag.StringVar(&cfg.Addr, "a", "localhost:8080", "address of the HTTP endpoint")
	flag.StringVar(&cfg.DatabaseURL, "d", "", "database URL")
	flag.BoolVar(&cfg.SeedDemoData, "s", false, "seed demo asset and accounts on startup")

	flag.Parse()

	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	return cfg, nil
}
