package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"HTTP_PORT"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	// Empty RedisAddr keeps pending transitions in process memory.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	HoldTTL           time.Duration `mapstructure:"HOLD_TTL"`
	HoldSweepSchedule string        `mapstructure:"HOLD_SWEEP_SCHEDULE"`

	// Empty KafkaHost logs status changes instead of publishing them.
	KafkaHost              string `mapstructure:"KAFKA_HOST"`
	KafkaOrderChangedTopic string `mapstructure:"KAFKA_ORDER_CHANGED_TOPIC"`

	OutboxRelaySchedule string `mapstructure:"OUTBOX_RELAY_SCHEDULE"`
	OutboxBatchSize     int    `mapstructure:"OUTBOX_BATCH_SIZE"`
	OutboxMaxAttempts   int    `mapstructure:"OUTBOX_MAX_ATTEMPTS"`
}

var defaults = map[string]any{
	"HTTP_PORT":                 "8080",
	"DB_HOST":                   "localhost",
	"DB_PORT":                   "5432",
	"DB_USER":                   "postgres",
	"DB_PASSWORD":               "",
	"DB_NAME":                   "logistics",
	"DB_SSLMODE":                "disable",
	"REDIS_ADDR":                "",
	"REDIS_PASSWORD":            "",
	"REDIS_DB":                  0,
	"HOLD_TTL":                  "15m",
	"HOLD_SWEEP_SCHEDULE":       "0 * * * * *",
	"KAFKA_HOST":                "",
	"KAFKA_ORDER_CHANGED_TOPIC": "order.status_changed",
	"OUTBOX_RELAY_SCHEDULE":     "*/5 * * * * *",
	"OUTBOX_BATCH_SIZE":         100,
	"OUTBOX_MAX_ATTEMPTS":       10,
}

// LoadConfig reads the process environment, optionally seeded from a .env
// file in the working directory. Variables already set win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []error
	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.DBHost == "" || c.DBName == "" {
		problems = append(problems, errors.New("DB_HOST and DB_NAME are required"))
	}
	if c.HoldTTL <= 0 {
		problems = append(problems, fmt.Errorf("HOLD_TTL must be positive, got %s", c.HoldTTL))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errors.New("KAFKA_ORDER_CHANGED_TOPIC is required with KAFKA_HOST"))
	}
	return errors.Join(problems...)
}

// DSN is the lib/pq and pgx connection string of the order database.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	if strings.TrimSpace(c.KafkaHost) == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
