package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Environment variable names.
const (
	EnvScreenWidth   = "ALIENS_SCREEN_WIDTH"
	EnvScreenHeight  = "ALIENS_SCREEN_HEIGHT"
	EnvMaxShots      = "ALIENS_MAX_SHOTS"
	EnvAlienOdds     = "ALIENS_ALIEN_ODDS"
	EnvBombOdds      = "ALIENS_BOMB_ODDS"
	EnvFireworkOdds  = "ALIENS_FIREWORK_ODDS"
	EnvAlienReload   = "ALIENS_ALIEN_RELOAD"
	EnvShotReload    = "ALIENS_SHOT_RELOAD"
	EnvAlienBands    = "ALIENS_ALIEN_BANDS"
	EnvInvincibility = "ALIENS_INVINCIBILITY"
	EnvTickRate      = "ALIENS_TICK_RATE"
	EnvFadeOut       = "ALIENS_FADE_OUT"
	EnvExitPause     = "ALIENS_EXIT_PAUSE"
	EnvSeed          = "ALIENS_SEED"
	EnvAssetDir      = "ALIENS_ASSET_DIR"
	EnvSoundDir      = "ALIENS_SOUND_DIR"
	EnvMusic         = "ALIENS_MUSIC"
	EnvAudio         = "ALIENS_AUDIO"
	EnvSampleRate    = "ALIENS_SAMPLE_RATE"
	EnvLogLevel      = "ALIENS_LOG_LEVEL"
)

// Config holds every tunable game parameter.
type Config struct {
	// Simulation field in logical pixels.
	ScreenWidth  int
	ScreenHeight int

	MaxShots     int // Most player shots alive at once
	AlienOdds    int // 1 in AlienOdds chance per tick once the alien reload is over
	BombOdds     int // 1 in BombOdds chance per tick for the last alien to drop a bomb
	FireworkOdds int // 1 in FireworkOdds chance per tick for a firework
	AlienReload  int // Ticks between new aliens
	ShotReload   int // Ticks between player shots
	AlienBands   int // Vertical bands a new alien may start in

	InvincibilityDuration time.Duration
	TickRate              int // Ticks per second

	FadeOut   time.Duration // Music fade-out on game over
	ExitPause time.Duration // Pause after game over before returning

	Seed int64 // 0 seeds from the clock

	AssetDir     string // Sprite directory; empty uses the embedded set
	SoundDir     string // Sound directory; empty uses synthesized cues
	Music        string // Looped music file; empty uses a synthesized loop
	AudioEnabled bool
	SampleRate   int

	LogLevel string
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		ScreenWidth:           640,
		ScreenHeight:          480,
		MaxShots:              2,
		AlienOdds:             22,
		BombOdds:              60,
		FireworkOdds:          22,
		AlienReload:           12,
		ShotReload:            12,
		AlienBands:            3,
		InvincibilityDuration: 10 * time.Second,
		TickRate:              40,
		FadeOut:               time.Second,
		ExitPause:             time.Second,
		AudioEnabled:          true,
		SampleRate:            44100,
		LogLevel:              "info",
	}
}

// Load reads envFile (if present) into the process environment and then
// applies ALIENS_* overrides on top of Default. Variables already set in the
// environment take precedence over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvScreenWidth, &c.ScreenWidth},
		{EnvScreenHeight, &c.ScreenHeight},
		{EnvMaxShots, &c.MaxShots},
		{EnvAlienOdds, &c.AlienOdds},
		{EnvBombOdds, &c.BombOdds},
		{EnvFireworkOdds, &c.FireworkOdds},
		{EnvAlienReload, &c.AlienReload},
		{EnvShotReload, &c.ShotReload},
		{EnvAlienBands, &c.AlienBands},
		{EnvTickRate, &c.TickRate},
		{EnvSampleRate, &c.SampleRate},
	}
	for _, v := range ints {
		if err := envInt(v.key, v.dst); err != nil {
			return err
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{EnvInvincibility, &c.InvincibilityDuration},
		{EnvFadeOut, &c.FadeOut},
		{EnvExitPause, &c.ExitPause},
	}
	for _, v := range durations {
		if err := envDuration(v.key, v.dst); err != nil {
			return err
		}
	}

	if err := envInt64(EnvSeed, &c.Seed); err != nil {
		return err
	}
	if err := envBool(EnvAudio, &c.AudioEnabled); err != nil {
		return err
	}
	envString(EnvAssetDir, &c.AssetDir)
	envString(EnvSoundDir, &c.SoundDir)
	envString(EnvMusic, &c.Music)
	envString(EnvLogLevel, &c.LogLevel)
	return nil
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	switch {
	case c.ScreenWidth <= 0 || c.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.ScreenWidth, c.ScreenHeight)
	case c.MaxShots < 0:
		return fmt.Errorf("%w: max shots %d", ErrInvalid, c.MaxShots)
	case c.AlienOdds <= 0 || c.BombOdds <= 0 || c.FireworkOdds <= 0:
		return fmt.Errorf("%w: odds must be positive", ErrInvalid)
	case c.AlienReload < 0 || c.ShotReload < 0:
		return fmt.Errorf("%w: reload must not be negative", ErrInvalid)
	case c.AlienBands <= 0:
		return fmt.Errorf("%w: alien bands %d", ErrInvalid, c.AlienBands)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate %d", ErrInvalid, c.TickRate)
	case c.InvincibilityDuration < 0 || c.FadeOut < 0 || c.ExitPause < 0:
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.SampleRate)
	}
	return nil
}

// TickDuration is the wall time budget of one tick.
func (c Config) TickDuration() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// InvincibilityTicks converts InvincibilityDuration into ticks.
func (c Config) InvincibilityTicks() uint64 {
	return uint64(c.InvincibilityDuration * time.Duration(c.TickRate) / time.Second)
}
