package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/aliens/internal/assets"
	"github.com/tomz197/aliens/internal/audio"
	"github.com/tomz197/aliens/internal/config"
	"github.com/tomz197/aliens/internal/draw"
	"github.com/tomz197/aliens/internal/input"
	"github.com/tomz197/aliens/internal/logging"
	"github.com/tomz197/aliens/internal/loop"
	"github.com/tomz197/aliens/internal/physics"
	"github.com/tomz197/aliens/internal/render"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger.Info("starting", "screen", fmt.Sprintf("%dx%d", cfg.ScreenWidth, cfg.ScreenHeight),
		"tickRate", cfg.TickRate, "seed", cfg.Seed, "audio", cfg.AudioEnabled)

	catalog, err := assets.Open(cfg.AssetDir)
	if err != nil {
		logger.Fatal("failed to load sprites", "dir", cfg.AssetDir, "err", err)
	}

	player := openAudio(cfg, logger)
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	field := physics.NewRect(0, 0, cfg.ScreenWidth, cfg.ScreenHeight)
	screen := render.NewTerminal(os.Stdout, draw.DefaultTermSizeFunc, catalog, field)
	if err := screen.Open(); err != nil {
		_ = term.Restore(fd, oldState)
		logger.Fatal("failed to open screen", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keys := input.StartStream(bufio.NewReader(os.Stdin))
	defer keys.Close()

	res, runErr := loop.Run(ctx, loop.Options{
		Config:   cfg,
		Sizes:    catalog.Sizes(),
		Rand:     loop.NewRand(cfg.Seed),
		Input:    keys,
		Renderer: screen,
		Audio:    player,
		Logger:   logger,
	})

	_ = screen.Close()
	_ = term.Restore(fd, oldState)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("game error", "err", runErr)
		os.Exit(1)
	}
	logger.Info("final score", "score", res.Score, "ticks", res.Ticks)
}

// openAudio starts the sound engine, or a silent player when audio is
// disabled or no output device is available.
func openAudio(cfg config.Config, logger *log.Logger) audio.Player {
	if !cfg.AudioEnabled {
		return audio.Nop{}
	}
	engine, err := audio.New(audio.Options{
		SampleRate: cfg.SampleRate,
		SoundDir:   cfg.SoundDir,
		Music:      cfg.Music,
	}, logger)
	if err != nil {
		logger.Warn("audio unavailable, playing silently", "err", err)
		return audio.Nop{}
	}
	return engine
}
