package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/auracommerce/storefront/internal/cart"
	"github.com/auracommerce/storefront/internal/catalog"
	"github.com/auracommerce/storefront/internal/checkout"
	h "github.com/auracommerce/storefront/internal/http"
	"github.com/auracommerce/storefront/internal/notify"
	"github.com/auracommerce/storefront/internal/store"
)

type Config struct {
	HTTPPort         string
	DBPath           string
	RedisAddr        string
	DescribeEndpoint string
	DescribeAPIKey   string
	RequestTimeout   time.Duration
	NotifyTimeout    time.Duration
	ShutdownTimeout  time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "storefront.db"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		DescribeEndpoint: getEnv("DESCRIBE_ENDPOINT", ""),
		DescribeAPIKey:   getEnv("DESCRIBE_API_KEY", ""),
		RequestTimeout:   30 * time.Second,
		NotifyTimeout:    notify.DefaultTimeout,
		ShutdownTimeout:  10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	repo, err := store.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer repo.Close()

	if err := repo.RunMigrations(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancel()

	sessions := cart.NewRedisStore(redisClient)
	catalogService := catalog.NewService(repo)
	dispatcher := notify.NewDispatcher(cfg.NotifyTimeout)
	checkoutService := checkout.NewService(repo, dispatcher)

	var describer catalog.Describer = catalog.StaticDescriber{}
	if cfg.DescribeEndpoint != "" {
		describer = catalog.NewHTTPDescriber(cfg.DescribeEndpoint, cfg.DescribeAPIKey, cfg.RequestTimeout)
	}

	router := h.NewRouter(h.RouterDeps{
		Store:          repo,
		Sessions:       sessions,
		Catalog:        catalogService,
		Checkout:       checkoutService,
		Dispatcher:     dispatcher,
		Describer:      describer,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
