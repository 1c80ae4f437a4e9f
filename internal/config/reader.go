package config

import "github.com/ilyakaznacheev/cleanenv"

// Reader loads a Config from some source; the server only ships the
// env-backed one, tests may substitute their own.
type Reader interface {
	Read() (*Config, error)
}

// EnvReader reads the configuration from environment variables,
// including any loaded from a .env file at startup.
type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
