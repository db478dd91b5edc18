package config

import "time"

type Kafka struct {
	Addresses   []string      `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	Group       string        `env:"KAFKA_GROUP" envDefault:"sneaker-shop"`
	ClientID    string        `env:"KAFKA_CLIENT_ID" envDefault:"sneaker-shop"`
	PingTimeout time.Duration `env:"KAFKA_PING_TIMEOUT" envDefault:"5s"`
}
