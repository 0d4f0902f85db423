package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/suPer8Hu/supportbot/internal/bot"
	"github.com/suPer8Hu/supportbot/internal/config"
	"github.com/suPer8Hu/supportbot/internal/fetch"
	"github.com/suPer8Hu/supportbot/internal/httpapi"
	"github.com/suPer8Hu/supportbot/internal/httpapi/handlers"
	"github.com/suPer8Hu/supportbot/internal/httpapi/middleware"
	"github.com/suPer8Hu/supportbot/internal/jobs"
	"github.com/suPer8Hu/supportbot/internal/session"
	"github.com/suPer8Hu/supportbot/internal/store/rabbitmq"
	"github.com/suPer8Hu/supportbot/internal/store/redisstore"
)

func main() {
	// .env first, so config.Load sees it
	_ = godotenv.Load()
	cfg := config.Load()

	if missing := cfg.MissingKeys(); len(missing) > 0 {
		log.Printf("warning: the following API keys are missing: %s", strings.Join(missing, ", "))
	}

	sources := fetch.Sources{
		Weather:  fetch.NewWeatherClient(cfg.WeatherBaseURL, cfg.OpenWeatherAPIKey),
		News:     fetch.NewNewsClient(cfg.NewsBaseURL, cfg.NewsAPIKey),
		Exchange: fetch.NewExchangeClient(cfg.ExchangeBaseURL, cfg.ExchangeRateAPIKey),
	}

	// Sessions and jobs share one process-scoped sqlite database, opened only
	// when something needs it.
	var db *gorm.DB
	openDB := func() *gorm.DB {
		if db == nil {
			var err error
			db, err = session.OpenDB()
			if err != nil {
				log.Fatalf("open db: %v", err)
			}
		}
		return db
	}

	var store session.Store
	switch cfg.SessionStore {
	case "", "memory":
		store = session.NewMemoryStore()
	case "sqlite":
		s, err := session.NewSQLiteStore(openDB())
		if err != nil {
			log.Fatalf("init session store: %v", err)
		}
		store = s
	default:
		log.Fatalf("unsupported SESSION_STORE=%q", cfg.SessionStore)
	}

	engine := bot.NewEngine(store, bot.NewResponder(sources))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Async pipeline is optional: without RABBIT_URL every message is
	// processed inline.
	var (
		jobRepo   *jobs.Repo
		publisher *rabbitmq.Publisher
	)
	if cfg.RabbitURL != "" {
		var err error
		jobRepo, err = jobs.NewRepo(openDB())
		if err != nil {
			log.Fatalf("init jobs repo: %v", err)
		}
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			log.Fatalf("rabbit publisher: %v", err)
		}
		defer publisher.Close()

		consumer := &rabbitmq.Consumer{
			URL:         cfg.RabbitURL,
			Queue:       cfg.RabbitQueue,
			Concurrency: cfg.WorkerConcurrency,
			Engine:      engine,
			Jobs:        jobRepo,
		}
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Printf("job consumer stopped: %v", err)
			}
		}()
	}

	var extra []gin.HandlerFunc
	if cfg.RateLimitPerMin > 0 {
		rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer rds.Close()
		extra = append(extra, middleware.RateLimit(rds, cfg.RateLimitPerMin))
	}

	h := handlers.NewHandler(cfg, engine, store, jobRepo, publisher)
	router := httpapi.NewRouter(h, extra...)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Printf("%s %s listening on %s", bot.Name, bot.Version, cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
