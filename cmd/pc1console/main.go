package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"pc1console/internal/actions"
	"pc1console/internal/api"
	"pc1console/internal/config"
	"pc1console/internal/registry"
	"pc1console/internal/store"
	"pc1console/internal/transport"
	"pc1console/internal/ui"
	"pc1console/pkg/logger"
)

func main() {
	// Initialize logger
	log := logger.New()
	defer log.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Info("Starting PC-1 console",
		zap.String("base_url", cfg.BaseURL),
		zap.String("data_dir", cfg.GetAppDataDir()))

	// Транспорт: HTTP-клиент, хранилище токена и повтор 401 с запросом
	// токена у пользователя
	tokenRequests := make(chan ui.TokenRequest)
	httpClient := transport.NewHTTPClient(cfg.HTTPClientConfig, log)
	tokens := transport.NewFileTokenStore(cfg.GetAppDataDir())
	authClient := transport.NewAuthClient(httpClient, tokens, ui.NewChannelPrompter(tokenRequests), log)

	client := api.New(cfg.BaseURL, authClient, log)

	st := store.New(cfg.StatusClearAfter)
	acts := actions.New(client, st, cfg, log)
	reg := registry.New(client, log)

	deps := &ui.Deps{
		Store:    st,
		Actions:  acts,
		API:      client,
		Registry: reg,
		Config:   cfg,
		Logger:   log,
	}

	if err := ui.Run(deps, tokenRequests); err != nil {
		log.Error("Console exited with error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// отправляем не успевшие уйти отложенные записи
	acts.FlushPendingWrites()
	log.Info("Console stopped")
}
