package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.design/x/clipboard"

	"github.com/milk9111/tileedit/config"
	"github.com/milk9111/tileedit/editor"
)

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML config file (embedded defaults when empty or missing)")
	flag.StringVar(&opts.level, "level", "", "level file, or name in the embedded levels/ (.json optional)")
	flag.BoolVar(&opts.sample, "sample", false, "open the embedded sample level")
	flag.BoolVar(&opts.newLevel, "new", false, "start from an empty level of -width x -height")
	flag.IntVar(&opts.width, "width", 16, "width of a new level")
	flag.IntVar(&opts.height, "height", 9, "height of a new level")
	flag.StringVar(&opts.script, "script", "", "tengo brush script to run against the level")
	flag.StringVar(&opts.out, "out", "", "write the edited level to this path")
	debug := flag.Bool("debug", false, "log every recorded edit")
	watch := flag.Bool("watch", false, "rerun when the config, level or script changes")
	flag.BoolVar(&opts.copy, "copy", false, "copy the rendered grid to the clipboard")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("tileedit: failed to load config")
	}
	setLogLevel(cfg.LogLevel, *debug)

	if opts.copy {
		if err := clipboard.Init(); err != nil {
			log.Warn().Err(err).Msg("tileedit: clipboard unavailable")
			opts.copy = false
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := editor.NewSession(cfg)
	if err := run(ctx, s, opts, os.Stdout); err != nil {
		if !*watch {
			log.Fatal().Err(err).Msg("tileedit: run failed")
		}
		log.Error().Err(err).Msg("tileedit: run failed")
	}
	if !*watch {
		return
	}

	if err := watchLoop(ctx, s, opts, *debug, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("tileedit: watch failed")
	}
}

func setLogLevel(name string, debug bool) {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}

func copyToClipboard(text string) {
	clipboard.Write(clipboard.FmtText, []byte(text))
	log.Info().Int("bytes", len(text)).Msg("tileedit: grid copied to clipboard")
}
