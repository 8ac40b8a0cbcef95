package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ConfigPath       string
	ArticlesPerPage  int
	MaxPages         int // -1 to load every page the API reports
	Timeout          time.Duration
	Locale           string
	RabbitURI        string // empty disables fan-out
	RabbitExchange   string
	RabbitRoutingKey string // prefix, the category is appended per run
}

const (
	ConfigPath          = "NEWSVIEW_CONFIG"
	ArticlesPerPage     = "ARTICLES_PER_PAGE"
	MaxPages            = "MAX_PAGES"
	Timeout             = "TIMEOUT"
	Locale              = "NEWSVIEW_LOCALE"
	RabbitURIEnv        = "RABBIT_URI"
	RabbitExchangeEnv   = "RABBIT_EXCHANGE"
	RabbitRoutingKeyEnv = "RABBIT_ROUTING_KEY"
)

func FromEnv() (Config, error) {
	var cfg Config

	cfg.ConfigPath = getEnv(ConfigPath, "config.json")
	cfg.Locale = getEnv(Locale, "en")
	cfg.RabbitURI = getEnv(RabbitURIEnv, "")
	cfg.RabbitExchange = getEnv(RabbitExchangeEnv, "news.loaded")
	cfg.RabbitRoutingKey = getEnv(RabbitRoutingKeyEnv, "article.loaded")

	var err error
	if cfg.ArticlesPerPage, err = getEnvInt(ArticlesPerPage, 20); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", ArticlesPerPage, err)
	}
	if cfg.ArticlesPerPage < 0 {
		return cfg, fmt.Errorf("invalid %v: must not be negative", ArticlesPerPage)
	}
	if cfg.MaxPages, err = getEnvInt(MaxPages, -1); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", MaxPages, err)
	}
	timeoutStr := getEnv(Timeout, "30s")
	if cfg.Timeout, err = time.ParseDuration(timeoutStr); err != nil {
		return cfg, fmt.Errorf("invalid %v: %w", Timeout, err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	return i, nil
}
