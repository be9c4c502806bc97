package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultPollInterval    = 60 * time.Second
	DefaultFetchTimeout    = 15 * time.Second
	DefaultFetchRetryMax   = 3 * time.Second
	DefaultRenderTimeout   = 30 * time.Second
	DefaultRenderSettle    = 2 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	DefaultUserAgent       = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
	DefaultAcceptLanguage  = "en-US,en;q=0.9"
	DefaultKafkaTopic      = "rates.sampled"
	DefaultRedisPrefix     = "quotes"
)
