package main

import (
	"context"
	"errors"
	"os"

	"github.com/hollowlog/yearshelf/internal/services"
	"github.com/hollowlog/yearshelf/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	// Prefer a running proxy when one is configured, otherwise talk to the
	// shelf API directly.
	var service services.Service
	if config.Proxy.URL != "" {
		service = services.NewProxyService(config.Proxy.URL, nil)
	} else if config.Upstream.AccessToken != "" {
		if svc, err := services.NewNeoDBService(config.Upstream.BaseURL, config.Upstream.AccessToken, config.Upstream.RateLimit); err == nil {
			service = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:  config,
		Service: service,
		Logger:  logger,
	})

	app := &cli.Command{
		Name:     "yearshelf",
		Usage:    "Browse a year of completed books, movies, music and games",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
