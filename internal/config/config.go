package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	infraconfig "quotes-aggregator/internal/infrastructure/config"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	// API
	Port             string
	SchedulerEnabled bool
	// Storage
	Storage       string
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
	// Collector
	PollInterval   time.Duration
	Sources        []string
	FetchTimeout   time.Duration
	FetchRetryMax  time.Duration
	UserAgent      string
	AcceptLanguage string
	// Browser
	RenderTimeout   time.Duration
	RenderSettle    time.Duration
	ChromePath      string
	ChromeHeadless  bool
	ChromeNoSandbox bool
	// Kafka (optional sample events)
	KafkaBrokers []string
	KafkaTopic   string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func boolDef(s string, def bool) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

func msDef(key string, def time.Duration) time.Duration {
	ms := atoiDef(getEnv(key, ""), -1)
	if ms < 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load reads environment variables and applies defaults.
func Load() Config {
	return Config{
		Env:              getEnv("ENV", "local"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		Port:             getEnv("PORT", infraconfig.DefaultHTTPPort),
		SchedulerEnabled: boolDef(getEnv("SCHEDULER_ENABLED", ""), true),
		Storage:          getEnv("STORAGE", "memory"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          atoiDef(getEnv("REDIS_DB", "0"), 0),
		RedisPrefix:      getEnv("REDIS_PREFIX", infraconfig.DefaultRedisPrefix),
		PollInterval:     msDef("POLL_INTERVAL_MS", infraconfig.DefaultPollInterval),
		Sources:          splitCSV(getEnv("SOURCES", "")),
		FetchTimeout:     msDef("FETCH_TIMEOUT_MS", infraconfig.DefaultFetchTimeout),
		FetchRetryMax:    msDef("FETCH_RETRY_MAX_MS", infraconfig.DefaultFetchRetryMax),
		UserAgent:        getEnv("USER_AGENT", infraconfig.DefaultUserAgent),
		AcceptLanguage:   getEnv("ACCEPT_LANGUAGE", infraconfig.DefaultAcceptLanguage),
		RenderTimeout:    msDef("RENDER_TIMEOUT_MS", infraconfig.DefaultRenderTimeout),
		RenderSettle:     msDef("RENDER_SETTLE_MS", infraconfig.DefaultRenderSettle),
		ChromePath:       getEnv("CHROME_PATH", ""),
		ChromeHeadless:   boolDef(getEnv("CHROME_HEADLESS", ""), true),
		ChromeNoSandbox:  boolDef(getEnv("CHROME_NO_SANDBOX", ""), false),
		KafkaBrokers:     splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:       getEnv("KAFKA_TOPIC", infraconfig.DefaultKafkaTopic),
	}
}
