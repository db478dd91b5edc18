package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnvFile is the file loaded into the environment before parsing, when present.
const DotEnvFile = ".env"

// New loads DotEnvFile into the environment (variables already set win) and unmarshals
// the environment into a struct of type T.
func New[T any]() (T, error) {
	var cfg T
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load %s: %w", DotEnvFile, err)
	}

	return Parse[T]()
}

// Parse unmarshals the current environment into a struct of type T without touching any .env file.
func Parse[T any]() (T, error) {
	var cfg T
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}
