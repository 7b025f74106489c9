package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/arena/internal/config"
	"github.com/zeusync/arena/internal/core/observability/log"
	"github.com/zeusync/arena/internal/feed"
	"github.com/zeusync/arena/internal/injector"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	replay := flag.String("replay", "", "render a recorded YAML stream instead of dialing the feed")
	debug := flag.Bool("debug", false, "start with the debug overlay enabled")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if *replay != "" {
		cfg.Replay = *replay
		if errors.Is(err, config.ErrInvalidConfig) {
			err = cfg.Validate()
		}
	}
	if err != nil {
		logger := log.Provide()
		logger.Error("invalid configuration", log.String("path", *configPath), log.Error(err))
		_ = logger.Sync()
		os.Exit(2)
	}
	if *debug {
		cfg.View.Debug = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg); err != nil {
		// already logged by the app logger
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	app := injector.InitializeApp(cfg)
	defer func() { _ = app.Logger.Sync() }()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Viewer.Run(ctx)
	})

	g.Go(func() error {
		if cfg.Replay == "" {
			return feed.NewClient(cfg.Feed, app.Host, app.Logger).Run(ctx)
		}
		f, err := os.Open(cfg.Replay)
		if err != nil {
			return err
		}
		defer f.Close()
		n, err := feed.Replay(ctx, f, app.Host, cfg.ReplayInterval)
		app.Logger.Info("replay finished", log.String("file", cfg.Replay), log.Int("messages", n))
		if err != nil {
			return err
		}
		// keep serving the final frame until interrupted
		<-ctx.Done()
		return nil
	})

	app.Logger.Info("arenaview started",
		log.String("viewer", cfg.Server.Addr),
		log.String("feed", cfg.Feed.URL),
		log.String("replay", cfg.Replay),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		app.Logger.Error("arenaview stopped", log.Error(err))
		return err
	}
	app.Logger.Info("arenaview stopped")
	return nil
}
