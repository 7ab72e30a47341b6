package cmd

import (
	"fmt"

	"github.com/ziadkadry99/fstvl/internal/config"
	"github.com/ziadkadry99/fstvl/internal/contentful"
	"github.com/ziadkadry99/fstvl/internal/db"
	"github.com/ziadkadry99/fstvl/internal/history"
	"github.com/ziadkadry99/fstvl/internal/render"
	"github.com/ziadkadry99/fstvl/internal/site"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `fstvl init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createClientFromConfig builds the Contentful client with the configured
// credentials and request timeout.
func createClientFromConfig(cfg *config.Config) (*contentful.Client, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	return contentful.NewClient(contentful.Options{
		BaseURL:     cfg.BaseURL,
		SpaceID:     cfg.SpaceID,
		AccessToken: cfg.AccessToken,
		Include:     cfg.IncludeDepth,
		Timeout:     timeout,
		Logger:      logger,
	}), nil
}

// siteOptions maps config onto generator options. Trigger, reporter and
// recorder are left for the caller.
func siteOptions(cfg *config.Config) site.Options {
	return site.Options{
		Title:            cfg.SiteTitle,
		StageOrder:       cfg.StageOrder,
		DayLabels:        [2]string{cfg.DayLabels[0], cfg.DayLabels[1]},
		MaxArtistsPerDay: cfg.MaxArtistsPerDay,
		DistributeDays:   cfg.DistributeDays,
		Sections:         cfg.Sections,
		Logger:           logger,
	}
}

// createGenerator wires the client and renderer into a site generator.
func createGenerator(cfg *config.Config, opts site.Options) (*site.SiteGenerator, *render.Renderer, error) {
	client, err := createClientFromConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	renderer, err := render.New()
	if err != nil {
		return nil, nil, fmt.Errorf("loading templates: %w", err)
	}
	gen, err := site.NewSiteGenerator(client, renderer, opts)
	if err != nil {
		return nil, nil, err
	}
	return gen, renderer, nil
}

// openHistory opens the render history database from config.
func openHistory(cfg *config.Config) (*db.DB, *history.Store, error) {
	database, err := db.Open(cfg.HistoryDB)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history database: %w", err)
	}
	return database, history.NewStore(database), nil
}
