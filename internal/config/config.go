package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

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

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Pass), d.Host, d.Port, d.Name)
}

// Kafka stores driver-location consumer settings. An empty broker list
// disables the consumer.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// AMQP stores the notifier broker settings. An empty URL disables the
// AMQP notifier.
type AMQP struct {
	URL      string
	Exchange string
}

// Routing stores route provider and geocoder settings.
type Routing struct {
	OSRMBaseURL      string
	NominatimBaseURL string
	Timeout          time.Duration
	MaxAttempts      int
	BaseDelay        time.Duration
	MaxDelay         time.Duration
}

// Dispatch stores dispatch engine settings.
type Dispatch struct {
	// BroadcastRadiusKm is how far around the pickup point new-delivery
	// notifications reach.
	BroadcastRadiusKm float64
	OperationTimeout  time.Duration
}

// RateLimit stores HTTP rate limit settings.
type RateLimit struct {
	Limit  int
	Window time.Duration
}

// Config stores dispatch service settings.
type Config struct {
	Port      int
	PprofPort int
	DB        DB
	Kafka     Kafka
	AMQP      AMQP
	Routing   Routing
	Dispatch  Dispatch
	RateLimit RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:      envInt("PORT", DefaultPort()),
		PprofPort: envInt("PPROF_PORT", 0),
		DB: DB{
			Host: envStr("POSTGRES_HOST", defaultDB.Host),
			Port: envStr("POSTGRES_PORT", defaultDB.Port),
			User: envStr("POSTGRES_USER", defaultDB.User),
			Pass: envStr("POSTGRES_PASSWORD", defaultDB.Pass),
			Name: envStr("POSTGRES_DB", defaultDB.Name),
		},
		Kafka: Kafka{
			Brokers: envList("KAFKA_BROKERS", defaultKafka.Brokers),
			Topic:   envStr("KAFKA_LOCATION_TOPIC", defaultKafka.Topic),
			GroupID: envStr("KAFKA_GROUP_ID", defaultKafka.GroupID),
		},
		AMQP: AMQP{
			URL:      envStr("AMQP_URL", defaultAMQP.URL),
			Exchange: envStr("AMQP_EXCHANGE", defaultAMQP.Exchange),
		},
		Routing: Routing{
			OSRMBaseURL:      envStr("OSRM_BASE_URL", defaultRouting.OSRMBaseURL),
			NominatimBaseURL: envStr("NOMINATIM_BASE_URL", defaultRouting.NominatimBaseURL),
			Timeout:          envDuration("ROUTING_TIMEOUT", defaultRouting.Timeout),
			MaxAttempts:      envInt("ROUTING_MAX_ATTEMPTS", defaultRouting.MaxAttempts),
			BaseDelay:        envDuration("ROUTING_BASE_DELAY", defaultRouting.BaseDelay),
			MaxDelay:         envDuration("ROUTING_MAX_DELAY", defaultRouting.MaxDelay),
		},
		Dispatch: Dispatch{
			BroadcastRadiusKm: envFloat("DISPATCH_BROADCAST_RADIUS_KM", defaultDispatch.BroadcastRadiusKm),
			OperationTimeout:  envDuration("DISPATCH_OPERATION_TIMEOUT", defaultDispatch.OperationTimeout),
		},
		RateLimit: RateLimit{
			Limit:  envInt("RATE_LIMIT", defaultRateLimit.Limit),
			Window: envDuration("RATE_LIMIT_WINDOW", defaultRateLimit.Window),
		},
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.Parse()

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.Dispatch.BroadcastRadiusKm < 0 {
		return nil, fmt.Errorf("invalid broadcast radius: %v", cfg.Dispatch.BroadcastRadiusKm)
	}
	return cfg, nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
