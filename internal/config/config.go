package config

import (
	"ctchen222/tictactoe-core/internal/validator"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings of the terminal front end, read from the environment.
type Config struct {
	LogLevel   string `env:"TICTACTOE_LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	Difficulty string `env:"TICTACTOE_DIFFICULTY" envDefault:"hard" validate:"difficulty"`
	Telemetry  Telemetry
}

// Telemetry selects where traces, metrics and logs are exported.
type Telemetry struct {
	// Exporter is one of none, stdout or otlp.
	Exporter       string `env:"TICTACTOE_TELEMETRY" envDefault:"none" validate:"oneof=none stdout otlp"`
	Endpoint       string `env:"TICTACTOE_OTLP_ENDPOINT" envDefault:"localhost:4317" validate:"required_if=Exporter otlp"`
	ServiceName    string `env:"TICTACTOE_SERVICE_NAME" envDefault:"tic-tac-toe" validate:"required"`
	ServiceVersion string `env:"TICTACTOE_SERVICE_VERSION" envDefault:"v0.1.0"`
}

// Load parses and validates the configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
