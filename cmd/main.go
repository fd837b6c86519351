package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytsrc/internal/repositories"
	"github.com/desertthunder/ytsrc/internal/services"
	"github.com/desertthunder/ytsrc/internal/shared"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

func main() {
	logs := newLogOutput(os.Stderr)
	logger := shared.NewLogger(logs)

	configPath := defaultConfigPath
	if env := os.Getenv("YTSRC_CONFIG"); env != "" {
		configPath = env
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		} else {
			logger.Warn("failed to load config, using defaults", "path", configPath, "error", err)
		}
	}
	if lvl, err := shared.ParseLogLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(logger, lvl)
	}

	var cache *repositories.KeyCacheAdapter
	if db, err := shared.OpenDatabase(config.Database); err == nil {
		defer db.Close()
		cache = repositories.NewKeyCacheAdapter(repositories.NewKeyRepository(db))
	} else {
		logger.Warn("api key cache unavailable", "path", config.Database.Path, "error", err)
	}

	opts := newRunnerOpts(config, logger, cache)
	opts.ConfigPath = configPath
	opts.Logs = logs
	runner := NewRunner(opts)

	app := &cli.Command{
		Name:     "ytsrc",
		Usage:    "Find the YouTube source of a track on YouTube Music and YouTube",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// newRunnerOpts builds both search backends from config. A nil cache leaves the api key in memory only.
func newRunnerOpts(config *shared.Config, logger *log.Logger, cache *repositories.KeyCacheAdapter) RunnerOpts {
	ytm := config.YouTubeMusic
	yt := config.YouTube

	feeder := services.NewYTDLP(services.YTDLPOpts{Binary: config.Feeds.Binary, BaseURL: yt.BaseURL + "/watch?v=", Logger: logger})

	keyOpts := services.KeyProviderOpts{
		PageURL:   ytm.BaseURL + "/",
		Service:   services.MusicMeta.ID,
		UserAgent: ytm.UserAgent,
		MaxAge:    ytm.KeyMaxAge(),
		Logger:    logger,
	}
	opts := RunnerOpts{Config: config, Feeder: feeder, Logger: logger}
	if cache != nil {
		keyOpts.Store = cache
		opts.KeyCache = cache
	}
	keys := services.NewPageKeyProvider(keyOpts)
	opts.Keys = keys

	music := services.NewMusicService(services.MusicOpts{
		BaseURL:           ytm.BaseURL,
		UserAgent:         ytm.UserAgent,
		Timeout:           ytm.Timeout(),
		RequestsPerSecond: ytm.RequestsPerSecond,
		HL:                ytm.HL,
		GL:                ytm.GL,
		Keys:              keys,
		Feeder:            feeder,
		Logger:            logger,
	})
	youtube := services.NewYouTubeService(services.YouTubeOpts{
		Searcher: services.NewWebVideoSearcher(services.VideoSearcherOpts{
			BaseURL:           yt.BaseURL,
			UserAgent:         ytm.UserAgent,
			Timeout:           yt.Timeout(),
			RequestsPerSecond: ytm.RequestsPerSecond,
			HL:                ytm.HL,
			GL:                ytm.GL,
			Logger:            logger,
		}),
		Feeder:      feeder,
		Concurrency: yt.Concurrency,
		PerQuery:    yt.PerQuery,
		PageEnd:     yt.PageEnd,
		Logger:      logger,
	})

	opts.Backends = []services.Service{music, youtube}
	opts.Shelves = music
	return opts
}
