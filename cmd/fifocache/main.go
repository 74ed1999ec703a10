package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"fifocache/internal/cache"
	"fifocache/internal/config"
	"fifocache/internal/logger"
)

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`
	Cache     cache.Config
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	opts := []logger.Option{logger.WithEnvironment(cfg.Env, "fifocache")}
	if cfg.LogLevel != "" {
		level, err := logger.ParseLevel(cfg.LogLevel)
		if err != nil {
			return err
		}
		opts = append(opts, logger.WithLevel(level))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	log := logger.New(opts...)

	c, err := cache.New(cfg.Cache, cache.WithLogger[string, string](log))
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}

	log.Info("fifocache demo starting",
		slog.Int("capacity", c.Capacity()),
		slog.Duration("default_ttl", cfg.Cache.DefaultTTL),
	)

	// -------------------------------------------------------------------
	// 1) FIFO eviction: fill to capacity, then one more key
	// -------------------------------------------------------------------
	for i := 0; i < c.Capacity(); i++ {
		c.PutWithTTL(fmt.Sprintf("k%d", i), fmt.Sprintf("v%d", i), time.Second)
	}
	// Reading k0 does not save it; eviction follows insertion order.
	if v, ok := c.Get("k0"); ok {
		log.Info("get", slog.String("key", "k0"), slog.String("value", v))
	}
	c.PutWithTTL("extra", "x", time.Second)
	if _, ok := c.Get("k0"); !ok {
		log.Info("get: missing (evicted as oldest)", slog.String("key", "k0"))
	}

	// -------------------------------------------------------------------
	// 2) Overwrite at capacity keeps size constant
	// -------------------------------------------------------------------
	before := c.Len()
	c.PutWithTTL("extra", "y", time.Second)
	log.Info("overwrite", slog.Int("len_before", before), slog.Int("len_after", c.Len()))

	// -------------------------------------------------------------------
	// 3) Lazy expiration
	// -------------------------------------------------------------------
	c.PutWithTTL("ttl", "short", 0)
	log.Info("zero ttl stored", slog.Int("len", c.Len()))
	if _, ok := c.Get("ttl"); !ok {
		log.Info("get: missing (expired and removed)", slog.String("key", "ttl"), slog.Int("len", c.Len()))
	}

	c.Clear()
	log.Info("cleared", slog.Int("len", c.Len()))
	return nil
}
