// Package loop runs the game: the fixed-rate tick loop, the per-tick phases
// and the collision rules.
package loop

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/tomz197/aliens/internal/audio"
	"github.com/tomz197/aliens/internal/config"
	"github.com/tomz197/aliens/internal/input"
	"github.com/tomz197/aliens/internal/object"
	"github.com/tomz197/aliens/internal/render"
	"github.com/tomz197/aliens/internal/spawn"
)

// InputSource yields one input snapshot per tick without blocking.
type InputSource interface {
	Poll() input.Snapshot
}

// Options configures Run. Input and Renderer are required.
type Options struct {
	Config   config.Config
	Sizes    object.Sizes
	Rand     spawn.Rand // Defaults to NewRand(Config.Seed)
	Input    InputSource
	Renderer render.Renderer
	Audio    audio.Player // Defaults to audio.Nop
	Clock    *Clock       // Defaults to NewClock(Config.TickDuration())
	Logger   *log.Logger
}

// Run plays one game until the player dies, quits or ctx is cancelled.
// The Input -> Step -> Render -> Wait cycle runs once per tick.
func Run(ctx context.Context, opts Options) (Result, error) {
	if opts.Input == nil || opts.Renderer == nil {
		return Result{}, errors.New("loop: input and renderer are required")
	}
	cfg := opts.Config
	if opts.Rand == nil {
		opts.Rand = NewRand(cfg.Seed)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Clock == nil {
		opts.Clock = NewClock(cfg.TickDuration())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	game := NewGame(cfg, opts.Sizes, opts.Rand)
	logger.Debug("game started", "field", game.Field(), "tickRate", cfg.TickRate)
	opts.Audio.StartMusic()

	for {
		select {
		case <-ctx.Done():
			opts.Audio.FadeOut(0)
			return game.Result(), ctx.Err()
		default:
		}

		opts.Clock.Begin()

		res := game.Step(opts.Input.Poll())
		for _, c := range res.Cues {
			opts.Audio.Play(c)
		}
		if res.ToggleFullscreen {
			opts.Renderer.ToggleFullscreen()
		}

		if err := opts.Renderer.Render(game.Frame()); err != nil {
			opts.Audio.FadeOut(0)
			return game.Result(), fmt.Errorf("render tick %d: %w", game.State.Tick, err)
		}

		if res.Over {
			break
		}
		opts.Clock.Wait()
	}

	result := game.Result()
	logger.Info("game over", "score", result.Score, "ticks", result.Ticks, "quit", result.Quit)

	opts.Audio.FadeOut(cfg.FadeOut)
	opts.Clock.Sleep(cfg.ExitPause)
	return result, nil
}
