package api

import (
	"github.com/kelseyhightower/envconfig"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	PostgresDSN     string   `envconfig:"POSTGRES_DSN"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	KafkaBrokers    []string `envconfig:"KAFKA_BROKERS"`
	KafkaOrderTopic string   `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`
}

// LoadConfig reads environment variables and applies defaults. Kafka is
// optional; with no brokers configured order events stay in-process.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
