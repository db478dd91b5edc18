package config

type HTTP struct {
	Port        uint32   `env:"HTTP_PORT" envDefault:"8000"`
	Swagger     bool     `env:"HTTP_SWAGGER" envDefault:"true"`
	APIPrefix   string   `env:"HTTP_API_PREFIX" envDefault:"/api"`
	CorsOrigins []string `env:"HTTP_CORS_ORIGINS" envDefault:"*" envSeparator:","`
}
