package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB stores Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the settings as a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// Kafka stores order-intake consumer settings. An empty broker list disables
// the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// RateLimit stores per-client HTTP rate limit settings.
type RateLimit struct {
	PerSecond float64
	Burst     int
}

// Ops stores credentials for the ops endpoints when reached from outside
// the loopback interface.
type Ops struct {
	User string
	Pass string
}

// Config stores service settings.
type Config struct {
	Port      int
	OpsPort   int
	DB        DB
	Kafka     Kafka
	RateLimit RateLimit
	Ops       Ops
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := Defaults()
	fromEnv(&cfg)

	fs := pflag.NewFlagSet("courier-dispatch", pflag.ContinueOnError)
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	fs.IntVar(&cfg.OpsPort, "ops-port", cfg.OpsPort, "ops port (pprof, metrics)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.OpsPort <= 0 || cfg.OpsPort > 65535 {
		return nil, fmt.Errorf("invalid ops port: %d", cfg.OpsPort)
	}
	return &cfg, nil
}

func fromEnv(cfg *Config) {
	intVar(&cfg.Port, "PORT")
	intVar(&cfg.OpsPort, "OPS_PORT")

	strVar(&cfg.DB.Host, "DB_HOST")
	strVar(&cfg.DB.Port, "DB_PORT")
	strVar(&cfg.DB.User, "DB_USER")
	strVar(&cfg.DB.Pass, "DB_PASS")
	strVar(&cfg.DB.Name, "DB_NAME")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	strVar(&cfg.Kafka.Topic, "KAFKA_TOPIC")
	strVar(&cfg.Kafka.GroupID, "KAFKA_GROUP_ID")

	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimit.PerSecond = f
		}
	}
	intVar(&cfg.RateLimit.Burst, "RATE_LIMIT_BURST")

	strVar(&cfg.Ops.User, "OPS_USER")
	strVar(&cfg.Ops.Pass, "OPS_PASS")
}

func strVar(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func intVar(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
