package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg, err := readEnv[Config]()
	if err != nil {
		return nil, err
	}

	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// ReadClient reads the client configuration from the environment.
func ReadClient() (*ClientConfig, error) {
	return readEnv[ClientConfig]()
}

func readEnv[T any]() (*T, error) {
	cfg := new(T)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the values cleanenv can only type-check.
func (c *Config) validate() error {
	var errs []error

	switch c.Env {
	case EnvDev, EnvProd, EnvLocal:
	default:
		errs = append(errs, fmt.Errorf("unknown env: %s", c.Env))
	}

	switch c.Log.Format {
	case "", LogFormatJSON, LogFormatConsole:
	default:
		errs = append(errs, fmt.Errorf("unknown log format: %s", c.Log.Format))
	}

	if rl := c.HTTP.RateLimit; rl.Enabled && (rl.RPS <= 0 || rl.Burst <= 0) {
		errs = append(errs, errors.New("rate limit rps and burst must be positive"))
	}

	return errors.Join(errs...)
}
