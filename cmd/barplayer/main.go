// Package main provides the barplayer entry point.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/barplayer/internal/app/console"
	"github.com/osa030/barplayer/internal/app/notification"
	"github.com/osa030/barplayer/internal/app/playback"
	"github.com/osa030/barplayer/internal/infra/audio"
	"github.com/osa030/barplayer/internal/infra/audio/device"
	"github.com/osa030/barplayer/internal/infra/config"
	"github.com/osa030/barplayer/internal/infra/logger"
	"github.com/osa030/barplayer/internal/infra/metadata"
	"github.com/osa030/barplayer/internal/infra/terminal"
)

var (
	app         = kingpin.New("barplayer", "Command-line music player with a live progress bar")
	configPath  = app.Flag("config", "Path to config file").Default("config/barplayer.yaml").IsSetByUser(&configSet).String()
	verbose     = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile     = app.Flag("logfile", "Path to log file (default: stderr)").String()
	listFormats = app.Flag("list-formats", "List supported audio formats and exit").Bool()
	flagPaths   = app.Flag("path", "Audio file to queue (repeatable)").Short('p').Strings()
	argPaths    = app.Arg("paths", "Audio files to queue").Strings()

	configSet bool
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	if *listFormats {
		printFormats()
		return
	}

	// Initialize logger
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "warn",
	}
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = "file"
		loggerConfig.File = *logfile
	}
	if err := logger.Init(loggerConfig); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	cfg, err := loadConfig()
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	err = run(cfg, append(*flagPaths, *argPaths...))
	_ = logger.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "barplayer: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file. The default path is optional.
func loadConfig() (*config.Config, error) {
	zlog.Debug().Msgf("Loading config from %s", *configPath)
	cfg, err := config.Load(*configPath)
	if err != nil && !configSet && errors.Is(err, os.ErrNotExist) {
		zlog.Debug().Msg("No config file, using defaults")
		return config.Default()
	}
	return cfg, err
}

// run executes the player. Using a separate function ensures defer
// statements are executed even when returning with an error.
func run(cfg *config.Config, paths []string) error {
	decoders, err := audio.NewDecoders(cfg.FormatConfigs())
	if err != nil {
		return errors.Wrap(err, "invalid format config")
	}

	sink, err := audio.NewSink(device.New(), decoders, cfg.SinkConfig())
	if err != nil {
		return err
	}
	defer sink.Close()

	ctrl := playback.NewController(playback.Config{
		Volume:    cfg.Player.Volume,
		BarWidth:  cfg.Progress.BarWidth,
		Tick:      cfg.Progress.Tick(),
		PausePoll: cfg.Progress.PausePoll(),
		RegionTop: cfg.Progress.RegionTop,
	}, sink, terminal.New(os.Stdout))

	notifier := notification.NewManager()
	notifier.Subscribe(notification.LogStream)

	eventsDone := make(chan struct{})
	go func() {
		defer close(eventsDone)
		notifier.Forward(ctrl.Events())
	}()
	defer func() {
		ctrl.Close()
		<-eventsDone
		notifier.Close()
		// Leave the terminal without a stale bar
		if err := ctrl.Clear(); err != nil {
			zlog.Warn().Msgf("Failed to clear progress: %v", err)
		}
	}()

	// Reserve the bar region and put the prompt below it
	if err := ctrl.Clear(); err != nil {
		return errors.Wrap(err, "failed to prepare terminal")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Console.Prompt,
		HistoryFile:     cfg.Console.HistoryFile,
		AutoComplete:    console.Completer(decoders.Supports),
		InterruptPrompt: "^C",
		EOFPrompt:       "stop",
	})
	if err != nil {
		return errors.Wrap(err, "failed to open prompt")
	}
	loop := console.New(rl, ctrl, metadata.NewReader(decoders), rl.Stdout())
	defer loop.Close()
	loopSub := notifier.Subscribe(loop)
	defer notifier.Unsubscribe(loopSub)

	for _, path := range paths {
		loop.Add(path)
	}
	if len(ctrl.Tracks()) > 0 {
		if err := ctrl.Start(); err != nil {
			zlog.Warn().Msgf("Failed to start playback: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	return loop.Run(ctx)
}

// printFormats prints available decoder formats.
func printFormats() {
	fmt.Println("Available Formats:")
	registry := audio.GetRegistered()
	for _, name := range audio.RegisteredNames() {
		f := registry[name]()
		fmt.Printf("  %-6s %v\n", f.Name(), f.Extensions())
	}
}
