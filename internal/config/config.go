package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Commerce CommerceConfig
	List     ListConfig
	Kafka    KafkaConfig
	DB       PostgresConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

// CommerceConfig points at the upstream commerce backend the dashboard is a
// console for. Token acquisition is out of scope; the value is taken as-is.
type CommerceConfig struct {
	BaseURL     string
	Token       string
	PageSize    int
	SleepMS     int
	TimeoutSecs int
	RetryMax    int
	RetryWaitMS int
}

// ListConfig tunes the in-memory list view.
type ListConfig struct {
	PageSize        int
	AutoRefreshSecs int
	AutoRefreshOn   bool
}

type KafkaConfig struct {
	Brokers       []string
	OrderTopic    string
	ConsumerGroup string
	Format        string // "json" or "avro"
	ArchiveOn     bool
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "orderdesk"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8040),
		},
		Commerce: CommerceConfig{
			BaseURL:     getEnv("COMMERCE_BASE_URL", "http://localhost:7055/api"),
			Token:       getEnv("COMMERCE_BEARER_TOKEN", ""),
			PageSize:    getEnvAsInt("COMMERCE_PAGE_SIZE", 100),
			SleepMS:     getEnvAsInt("COMMERCE_SLEEP_MS", 200),
			TimeoutSecs: getEnvAsInt("COMMERCE_TIMEOUT_SECS", 30),
			RetryMax:    getEnvAsInt("COMMERCE_RETRY_MAX", 3),
			RetryWaitMS: getEnvAsInt("COMMERCE_RETRY_WAIT_MS", 500),
		},
		List: ListConfig{
			PageSize:        getEnvAsInt("LIST_PAGE_SIZE", 10),
			AutoRefreshSecs: getEnvAsInt("LIST_AUTO_REFRESH_SECS", 60),
			AutoRefreshOn:   getEnvAsBool("LIST_AUTO_REFRESH", true),
		},
		Kafka: KafkaConfig{
			Brokers:       splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			OrderTopic:    getEnv("KAFKA_ORDER_TOPIC", "orderdesk_orders"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "orderdesk"),
			Format:        getEnv("KAFKA_FORMAT", "json"),
			ArchiveOn:     getEnvAsBool("KAFKA_ARCHIVE_ENABLED", false),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (c CommerceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func (c CommerceConfig) RetryWait() time.Duration {
	return time.Duration(c.RetryWaitMS) * time.Millisecond
}

func (c CommerceConfig) Sleep() time.Duration {
	return time.Duration(c.SleepMS) * time.Millisecond
}

func (l ListConfig) AutoRefreshInterval() time.Duration {
	return time.Duration(l.AutoRefreshSecs) * time.Second
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.Commerce.BaseURL == "" {
		return fmt.Errorf("COMMERCE_BASE_URL is empty")
	}
	if c.Kafka.Format != "json" && c.Kafka.Format != "avro" {
		return fmt.Errorf("KAFKA_FORMAT must be json or avro")
	}
	if c.Kafka.ArchiveOn {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka brokers is empty")
		}
		if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("database config is incomplete")
		}
	}
	// Commerce token may be empty against an unauthenticated dev backend.
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
