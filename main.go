package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v2"

	"github.com/ytget/departure-board/internal/board"
	"github.com/ytget/departure-board/internal/config"
	"github.com/ytget/departure-board/internal/platform"
	"github.com/ytget/departure-board/internal/transit"
	"github.com/ytget/departure-board/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.departure-board"
	AppName = "Departure Board"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Logger = log.Logger.Level(zerolog.InfoLevel)

	defaultConfig, err := platform.DefaultConfigPath()
	if err != nil {
		log.Warn().Err(err).Msg("no default config location")
	}

	cliApp := &cli.App{
		Name:    "departure-board",
		Usage:   "live departures for one stop",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "YAML config file",
				Value: defaultConfig,
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "style profile (board or compact)",
			},
			&cli.StringFlag{
				Name:  "language",
				Usage: "UI language (system, en, de)",
			},
			&cli.StringFlag{
				Name:  "station",
				Usage: "station name as known to the API",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "time between refreshes",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "show departures to every destination",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	}
	log.Info().Str("version", version).Msg("departure board starting")

	fyneApp := app.NewWithID(AppID)
	settings := config.NewSettings(fyneApp)

	cfg, err := loadConfig(c, settings)
	if err != nil {
		return err
	}
	log.Debug().
		Str("station", cfg.Station).
		Str("style", string(cfg.Style)).
		Dur("interval", cfg.PollInterval).
		Bool("filter_terminals", cfg.FilterTerminals).
		Msg("configuration loaded")

	client := transit.NewClient(cfg.ClientConfig())
	log.Debug().
		Str("url", client.RequestURL()).
		Dur("http_timeout", client.Config().Timeout).
		Msg("stationboard client ready")

	runner := board.NewRunner(client, board.RunnerConfig{
		Interval:        cfg.PollInterval,
		FetchTimeout:    cfg.FetchTimeout,
		FilterTerminals: cfg.FilterTerminals,
	})

	fyneApp.Settings().SetTheme(ui.NewBoardTheme(config.StyleOrDefault(cfg.Style)))
	window := fyneApp.NewWindow(AppName)
	boardUI := ui.NewBoardUI(fyneApp, window, runner, settings, cfg)
	runner.SetUpdateCallback(boardUI.OnStateUpdate)

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	var wg conc.WaitGroup
	wg.Go(func() {
		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("board runner failed")
		}
	})

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	wg.Go(func() {
		<-sigCtx.Done()
		if ctx.Err() == nil {
			log.Info().Msg("signal received, quitting")
			fyne.Do(fyneApp.Quit)
		}
	})

	window.ShowAndRun()

	cancel()
	wg.Wait()
	log.Info().Msg("departure board stopped")
	return nil
}

// loadConfig resolves defaults, the config file, remembered preferences and flags
func loadConfig(c *cli.Context, settings *config.Settings) (config.Config, error) {
	path := c.String("config")
	if platform.FileExists(path) {
		log.Debug().Str("path", path).Msg("using config file")
	} else if c.IsSet("config") {
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
	}

	cfg, err := config.LoadFile(path, config.Default())
	if err != nil {
		return cfg, err
	}

	overridden := map[string]bool{}
	if c.IsSet("style") {
		cfg.Style = config.StyleName(c.String("style"))
		overridden[config.KeyStyle] = true
	}
	if c.IsSet("language") {
		cfg.Language = c.String("language")
		overridden[config.KeyLanguage] = true
	}
	if c.IsSet("all") {
		cfg.FilterTerminals = !c.Bool("all")
		overridden[config.KeyFilterTerminals] = true
	}
	if c.IsSet("station") {
		cfg.Station = c.String("station")
	}
	if c.IsSet("interval") {
		cfg.PollInterval = c.Duration("interval")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, cli.Exit(err.Error(), 2)
	}
	cfg = settings.Apply(cfg, overridden)
	return cfg, nil
}
