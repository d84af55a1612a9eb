package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"cisbosium-trader/api"
	"cisbosium-trader/config"
	"cisbosium-trader/feed"
	"cisbosium-trader/market"
	"cisbosium-trader/portfolio"
	"cisbosium-trader/session"
	"cisbosium-trader/trade"
	"cisbosium-trader/ui"
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("logger setup failed: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.NewAppConfig()
	if err != nil {
		logger.Fatal("configuration failed", zap.Error(err))
	}

	sessions := session.NewStore(session.NewFileStorage(cfg.TokenFile), logger)
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, sessions)

	portfolioStore, err := portfolio.New(client, sessions, logger)
	if err != nil {
		logger.Fatal("portfolio store setup failed", zap.Error(err))
	}

	catalog := market.NewCatalog(cfg.CatalogDelay, logger)
	priceFeed := feed.NewPriceFeed(client, cfg.PollInterval, logger)
	submitter := trade.NewSubmitter(client, portfolioStore, priceFeed, sessions, logger)

	if cfg.StreamURL != "" {
		stream := feed.NewStream(cfg.StreamURL, priceFeed, logger)
		go stream.Run(context.Background())
	}

	fyneApp := app.NewWithID("com.cisbosium.trader")
	uiApp := ui.NewApp(fyneApp, cfg, client, sessions, portfolioStore, catalog, priceFeed, submitter, logger)

	logger.Info("starting",
		zap.String("version", cfg.Version),
		zap.String("api", cfg.APIBaseURL))
	uiApp.Run()
}
