package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/temperature-summary/internal/domain"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all run settings, populated from environment variables.
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	OutputPath        string                   `envconfig:"OUTPUT_PATH" default:"output.csv"`
	UTCOffset         domain.Offset            `envconfig:"UTC_OFFSET" default:"+09:00"`
	TemperaturePolicy domain.TemperaturePolicy `envconfig:"TEMPERATURE_POLICY" default:"propagate"`

	// Kafka publishing is enabled when at least one broker is set.
	KafkaBrokers []string      `envconfig:"KAFKA_BROKERS"`
	KafkaTopic   string        `envconfig:"KAFKA_TOPIC" default:"daily-temperature-summaries"`
	KafkaTimeout time.Duration `envconfig:"KAFKA_TIMEOUT" default:"10s"`

	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg.KafkaBrokers = parseBrokers(cfg.KafkaBrokers)

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.LogFormat {
	case "json", "text":
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return nil, errors.New("OUTPUT_PATH is required")
	}
	if cfg.KafkaTimeout <= 0 {
		return nil, errors.New("KAFKA_TIMEOUT must be positive")
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return &cfg, nil
}

// KafkaEnabled reports whether summaries should also be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseBrokers(raw []string) []string {
	brokers := make([]string, 0, len(raw))
	for _, b := range raw {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
