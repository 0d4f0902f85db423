package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.SessionStore != "memory" {
		t.Fatalf("SessionStore = %q", cfg.SessionStore)
	}
	if cfg.RabbitQueue != "chat_jobs" {
		t.Fatalf("RabbitQueue = %q", cfg.RabbitQueue)
	}
	if cfg.WorkerConcurrency != 2 {
		t.Fatalf("WorkerConcurrency = %d", cfg.WorkerConcurrency)
	}
	if cfg.RateLimitPerMin != 0 {
		t.Fatalf("RateLimitPerMin = %d", cfg.RateLimitPerMin)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("SESSION_STORE", "sqlite")
	t.Setenv("OPENWEATHERMAP_API_KEY", "wkey")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("RATE_LIMIT_PER_MIN", "60")
	t.Setenv("REDIS_DB", "nonsense")

	cfg := Load()
	if cfg.HTTPAddr != ":9999" || cfg.SessionStore != "sqlite" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.OpenWeatherAPIKey != "wkey" {
		t.Fatalf("OpenWeatherAPIKey = %q", cfg.OpenWeatherAPIKey)
	}
	if cfg.WorkerConcurrency != 8 || cfg.RateLimitPerMin != 60 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// unparseable ints fall back to the default
	if cfg.RedisDB != 0 {
		t.Fatalf("RedisDB = %d", cfg.RedisDB)
	}
}

func TestMissingKeys(t *testing.T) {
	all := Config{}.MissingKeys()
	want := []string{"openweathermap", "newsapi", "exchange_rate"}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("MissingKeys = %v, want %v", all, want)
	}

	cfg := Config{OpenWeatherAPIKey: "a", NewsAPIKey: "b", ExchangeRateAPIKey: "c"}
	if got := cfg.MissingKeys(); len(got) != 0 {
		t.Fatalf("MissingKeys = %v, want none", got)
	}

	cfg = Config{NewsAPIKey: "b"}
	if got := cfg.MissingKeys(); !reflect.DeepEqual(got, []string{"openweathermap", "exchange_rate"}) {
		t.Fatalf("MissingKeys = %v", got)
	}
}
