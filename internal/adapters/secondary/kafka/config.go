package kafka

import (
	"strings"
)

// Config конфигурация Kafka producer для событий рассчитанных карт
type Config struct {
	Enabled          bool   `split_words:"true" default:"false"`
	Brokers          string `split_words:"true"`                             // "broker1:9092,broker2:9092"
	Topic            string `split_words:"true" default:"natal_charts"`      // название топика
	SecurityProtocol string `split_words:"true"`                             // "SASL_SSL", "PLAINTEXT"
	SASLMechanism    string `envconfig:"SASL_MECHANISM"`                     // "PLAIN", "SCRAM-SHA-256"
	SASLUsername     string `envconfig:"SASL_USERNAME"`
	SASLPassword     string `envconfig:"SASL_PASSWORD"`
}

// GetBrokers возвращает список брокеров из строки
func (c *Config) GetBrokers() []string {
	if c.Brokers == "" {
		return []string{"localhost:9092"}
	}
	brokers := strings.Split(c.Brokers, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}
	return brokers
}
