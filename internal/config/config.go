package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr string

	// Provider credentials. All optional: a missing key routes the intent to
	// an instructive reply instead of a request.
	OpenWeatherAPIKey  string
	NewsAPIKey         string
	ExchangeRateAPIKey string

	// Provider base URLs, overridable for tests and stubs.
	WeatherBaseURL  string
	NewsBaseURL     string
	ExchangeBaseURL string

	// Session store backend: "memory" (default) or "sqlite".
	SessionStore string

	// Async pipeline. Disabled when RabbitURL is empty.
	RabbitURL         string
	RabbitQueue       string
	WorkerConcurrency int

	// Rate limiting. Disabled when RateLimitPerMin is 0.
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimitPerMin int
}

func Load() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	sessionStore := os.Getenv("SESSION_STORE")
	if sessionStore == "" {
		sessionStore = "memory"
	}

	rabbitQueue := os.Getenv("RABBIT_QUEUE")
	if rabbitQueue == "" {
		rabbitQueue = "chat_jobs"
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	return Config{
		HTTPAddr: addr,

		OpenWeatherAPIKey:  os.Getenv("OPENWEATHERMAP_API_KEY"),
		NewsAPIKey:         os.Getenv("NEWSAPI_KEY"),
		ExchangeRateAPIKey: os.Getenv("EXCHANGERATE_API_KEY"),

		WeatherBaseURL:  os.Getenv("WEATHER_BASE_URL"),
		NewsBaseURL:     os.Getenv("NEWS_BASE_URL"),
		ExchangeBaseURL: os.Getenv("EXCHANGE_BASE_URL"),

		SessionStore: sessionStore,

		RabbitURL:         os.Getenv("RABBIT_URL"),
		RabbitQueue:       rabbitQueue,
		WorkerConcurrency: envInt("WORKER_CONCURRENCY", 2),

		RedisAddr:       redisAddr,
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         envInt("REDIS_DB", 0),
		RateLimitPerMin: envInt("RATE_LIMIT_PER_MIN", 0),
	}
}

// MissingKeys names the provider credentials that are not configured, for
// the startup warning.
func (c Config) MissingKeys() []string {
	var missing []string
	if c.OpenWeatherAPIKey == "" {
		missing = append(missing, "openweathermap")
	}
	if c.NewsAPIKey == "" {
		missing = append(missing, "newsapi")
	}
	if c.ExchangeRateAPIKey == "" {
		missing = append(missing, "exchange_rate")
	}
	return missing
}

func envInt(name string, def int) int {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
