package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"newsview/internal/cli"
	"newsview/internal/config"
	"newsview/internal/event"

	"github.com/joho/godotenv"
)

func main() {
	// Root context cancelled on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "[newsview] ", log.LstdFlags|log.Lshortfile)

	// .env is optional, real environment wins
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	opts := cli.Options{
		In:              os.Stdin,
		Out:             os.Stdout,
		HTTPClient:      &http.Client{Timeout: cfg.Timeout},
		ConfigPath:      cfg.ConfigPath,
		ArticlesPerPage: cfg.ArticlesPerPage,
		MaxPages:        cfg.MaxPages,
		Locale:          cfg.Locale,
		Logger:          logger,
	}

	// Event publisher (RabbitMQ), only when configured
	var publisher *event.RabbitPublisher
	if cfg.RabbitURI != "" {
		publisher, err = event.NewRabbitPublisher(
			cfg.RabbitURI,
			cfg.RabbitExchange,
			cfg.RabbitRoutingKey,
			logger,
		)
		if err != nil {
			logger.Fatalf("failed to init rabbit publisher: %v", err)
		}
		opts.Publisher = publisher
	}

	err = cli.Run(ctx, opts)

	// log.Fatalf skips deferred calls, close explicitly
	if publisher != nil {
		publisher.Close()
	}
	if err != nil {
		logger.Fatalf("newsview: %v", err)
	}
}
