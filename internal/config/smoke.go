package config

import "time"

type Smoke struct {
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8000"`
	APIPrefix  string        `env:"HTTP_API_PREFIX" envDefault:"/api"`
	Timeout    time.Duration `env:"SMOKE_TIMEOUT" envDefault:"10s"`
}
