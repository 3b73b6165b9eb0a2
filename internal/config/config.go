// Package config loads server settings from a .env file and the process
// environment. Environment variables always win over .env entries.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every tunable of the server process.
type Config struct {
	Host            string `env:"HOST" envDefault:"127.0.0.1"`
	Port            int    `env:"PORT" envDefault:"8080"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	MaxWrongGuesses int    `env:"MAX_WRONG_GUESSES" envDefault:"7"`
	ClientOrigin    string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
}

// Load reads .env when present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the host:port the HTTP server binds.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
