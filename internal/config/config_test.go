package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ScreenWidth != 640 || cfg.ScreenHeight != 480 {
		t.Errorf("screen = %dx%d, want 640x480", cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if cfg.MaxShots != 2 {
		t.Errorf("MaxShots = %d, want 2", cfg.MaxShots)
	}
	if cfg.AlienOdds != 22 || cfg.BombOdds != 60 {
		t.Errorf("odds = %d/%d, want 22/60", cfg.AlienOdds, cfg.BombOdds)
	}
	if cfg.AlienReload != 12 || cfg.ShotReload != 12 {
		t.Errorf("reload = %d/%d, want 12/12", cfg.AlienReload, cfg.ShotReload)
	}
	if cfg.InvincibilityDuration != 10*time.Second {
		t.Errorf("InvincibilityDuration = %v, want 10s", cfg.InvincibilityDuration)
	}
	if cfg.TickRate != 40 {
		t.Errorf("TickRate = %d, want 40", cfg.TickRate)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDerivedTiming(t *testing.T) {
	cfg := Default()

	if got := cfg.TickDuration(); got != 25*time.Millisecond {
		t.Errorf("TickDuration = %v, want 25ms", got)
	}
	if got := cfg.InvincibilityTicks(); got != 400 {
		t.Errorf("InvincibilityTicks = %d, want 400", got)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvScreenWidth, "800")
	t.Setenv(EnvMaxShots, "5")
	t.Setenv(EnvInvincibility, "2500")
	t.Setenv(EnvFadeOut, "250ms")
	t.Setenv(EnvSeed, "42")
	t.Setenv(EnvAudio, "false")
	t.Setenv(EnvSoundDir, "/tmp/sounds")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ScreenWidth != 800 {
		t.Errorf("ScreenWidth = %d, want 800", cfg.ScreenWidth)
	}
	if cfg.MaxShots != 5 {
		t.Errorf("MaxShots = %d, want 5", cfg.MaxShots)
	}
	if cfg.InvincibilityDuration != 2500*time.Millisecond {
		t.Errorf("InvincibilityDuration = %v, want 2.5s", cfg.InvincibilityDuration)
	}
	if cfg.FadeOut != 250*time.Millisecond {
		t.Errorf("FadeOut = %v, want 250ms", cfg.FadeOut)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.AudioEnabled {
		t.Error("AudioEnabled should be false")
	}
	if cfg.SoundDir != "/tmp/sounds" {
		t.Errorf("SoundDir = %q", cfg.SoundDir)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := EnvTickRate + "=50\n" + EnvBombOdds + "=30\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Real environment wins over the file.
	t.Setenv(EnvBombOdds, "10")
	// Registered so the value godotenv sets is cleaned up after the test.
	t.Setenv(EnvTickRate, "")
	os.Unsetenv(EnvTickRate)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.TickRate != 50 {
		t.Errorf("TickRate = %d, want 50 from file", cfg.TickRate)
	}
	if cfg.BombOdds != 10 {
		t.Errorf("BombOdds = %d, want 10 from env", cfg.BombOdds)
	}
}

func TestLoadMissingEnvFileIsIgnored(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
		invalid    bool
	}{
		{EnvMaxShots, "two", false},
		{EnvInvincibility, "forever", false},
		{EnvAudio, "maybe", false},
		{EnvTickRate, "0", true},
		{EnvAlienOdds, "-1", true},
		{EnvAlienBands, "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load("")
			if err == nil {
				t.Fatalf("%s=%s: expected error", tt.key, tt.value)
			}
			if errors.Is(err, ErrInvalid) != tt.invalid {
				t.Errorf("%s=%s: errors.Is(ErrInvalid) = %v, want %v", tt.key, tt.value, !tt.invalid, tt.invalid)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ALIENS_TEST_KEY", "value")
	if got := GetEnv("ALIENS_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want value", got)
	}
	if got := GetEnv("ALIENS_TEST_KEY_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}
