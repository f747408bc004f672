package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/comedolab/comedo/pkg/comedo"
	"github.com/comedolab/comedo/pkg/comedo/config"

	"github.com/comedolab/comedo/internal/bot"
	"github.com/comedolab/comedo/internal/cache"
	"github.com/comedolab/comedo/internal/lookup"
	"github.com/comedolab/comedo/internal/telegram"
)

func main() {
	configPath := flag.String("config", "comedobot.yaml", "Configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openCache(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	b := bot.New(bot.Options{
		Telegram: &telegram.Client{Token: cfg.Telegram.Token},
		Lookup: &lookup.Client{
			BaseURL:         cfg.Lookup.BaseURL,
			APIKey:          cfg.Lookup.APIKey,
			Model:           cfg.Lookup.Model,
			MaxOutputTokens: cfg.Lookup.MaxOutputTokens,
		},
		Analyzer:       comedo.New(comedo.Options{}),
		Cache:          store,
		PollTimeoutSec: cfg.Telegram.PollTimeoutSec,
	})

	if err := b.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal(err)
	}
	log.Println("shutting down")
}

func openCache(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.Cache.Backend == "sqlite" {
		return cache.OpenSQLite(ctx, cfg.Cache.Path, cfg.CacheTTL())
	}
	return cache.NewMemory(cfg.CacheTTL()), nil
}
