package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/etnz/ganan"
	"github.com/etnz/ganan/agent"
	"github.com/joho/godotenv"
)

// Config holds the application settings.
//
// Values come from, by increasing priority: the defaults, the configuration
// file, the environment (a .env file is loaded if present), and the
// command-line flags.
type Config struct {
	Store    string `toml:"store" env:"GANAN_STORE"`
	Currency string `toml:"currency" env:"GANAN_CURRENCY"`
	Model    string `toml:"model" env:"GANAN_MODEL"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Store:    "ganan.json",
		Currency: ganan.DefaultCurrency,
		Model:    agent.DefaultModel,
	}
}

// LoadConfig reads the configuration file, if it exists, then the environment.
func LoadConfig(file string) (Config, error) {
	cfg := DefaultConfig()
	if file != "" {
		if _, err := toml.DecodeFile(file, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("could not read config file %q: %w", file, err)
		}
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, could not load .env file: %v", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// loadConfig loads the configuration and applies the command-line flags.
func loadConfig() (Config, error) {
	cfg, err := LoadConfig(*configFile)
	if err != nil {
		return cfg, err
	}
	if *storeFlag != "" {
		cfg.Store = *storeFlag
	}
	if *currencyFlag != "" {
		cfg.Currency = *currencyFlag
	}
	if err := ganan.ValidateCurrency(cfg.Currency); err != nil {
		return cfg, err
	}
	return cfg, nil
}
