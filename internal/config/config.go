package config

import (
	"ctchen222/perfect-tic-tac-toe/internal/validator"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when CONFIG_PATH is not set.
const DefaultPath = "config.yml"

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	HTTP      HTTP      `yaml:"http"`
	Storage   Storage   `yaml:"storage"`
	Telemetry Telemetry `yaml:"telemetry"`
	Game      Game      `yaml:"game"`
}

type HTTP struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080" validate:"required"`
}

// Storage locates the SQLite game ledger. An empty path disables it.
type Storage struct {
	Path string `yaml:"path" env:"STORAGE_PATH"`
}

type Telemetry struct {
	Exporter    string `yaml:"exporter" env:"OTEL_EXPORTER" env-default:"none" validate:"oneof=none stdout otlp"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"otel-collector:4317" validate:"required_if=Exporter otlp"`
	ServiceName string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"perfect-tic-tac-toe" validate:"required"`
}

type Game struct {
	Difficulty  string        `yaml:"difficulty" env:"BOT_DIFFICULTY" env-default:"hard" validate:"oneof=easy medium hard"`
	ThinkDelay  time.Duration `yaml:"think-delay" env:"BOT_THINK_DELAY" env-default:"1s" validate:"gte=0"`
	SelectDelay time.Duration `yaml:"select-delay" env:"SELECT_DELAY" env-default:"500ms" validate:"gte=0"`
}

// Load reads the YAML file at CONFIG_PATH (or DefaultPath) when it exists and
// the environment otherwise. Environment variables override file values.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit file path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file %s: %w", path, statErr)
	}

	if err := validator.GetValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
