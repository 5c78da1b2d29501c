package audio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const testRate = beep.SampleRate(22050)

func constant(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		if s[0] > m {
			m = s[0]
		}
		if -s[0] > m {
			m = -s[0]
		}
	}
	return m
}

func TestSynthCues(t *testing.T) {
	tests := []struct {
		name string
		buf  *beep.Buffer
		want time.Duration
	}{
		{"shot", synthShot(testRate), 120 * time.Millisecond},
		{"explosion", synthExplosion(testRate), 450 * time.Millisecond},
		{"music", synthMusic(testRate), 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.buf.Len() != testRate.N(tt.want) {
				t.Errorf("Len() = %d, want %d", tt.buf.Len(), testRate.N(tt.want))
			}
			samples := make([][2]float64, tt.buf.Len())
			tt.buf.Streamer(0, tt.buf.Len()).Stream(samples)
			if p := peak(samples); p == 0 || p > 1.5 {
				t.Errorf("peak amplitude = %f", p)
			}
		})
	}
}

func TestEnginePlayMixesCue(t *testing.T) {
	e := newEngine(testRate, &sync.Mutex{}, nil)
	e.load(Options{})

	e.Play(CueShot)
	e.Play(CueExplosion)
	if e.mixer.Len() != 2 {
		t.Fatalf("mixer has %d streamers, want 2", e.mixer.Len())
	}

	samples := make([][2]float64, 512)
	e.mixer.Stream(samples)
	if peak(samples) == 0 {
		t.Error("mixer produced silence")
	}
}

func TestEnginePlayWithoutCueIsSilent(t *testing.T) {
	e := newEngine(testRate, &sync.Mutex{}, nil)
	e.Play(CueShot)
	if e.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers, want 0", e.mixer.Len())
	}
}

func TestStartMusicOnlyOnce(t *testing.T) {
	e := newEngine(testRate, &sync.Mutex{}, nil)
	e.load(Options{})

	e.StartMusic()
	e.StartMusic()
	if e.mixer.Len() != 1 {
		t.Fatalf("mixer has %d streamers, want 1", e.mixer.Len())
	}

	e.FadeOut(100 * time.Millisecond)
	samples := make([][2]float64, testRate.N(time.Second))
	e.mixer.Stream(samples)
	if !e.fader.done() {
		t.Fatal("music should be finished after the fade")
	}
	if e.mixer.Len() != 0 {
		t.Errorf("mixer still holds %d streamers after fade", e.mixer.Len())
	}

	e.StartMusic()
	if e.mixer.Len() != 1 {
		t.Error("music should restart after a finished fade")
	}
}

func TestFaderRamp(t *testing.T) {
	f := &fader{streamer: constant(1)}

	samples := make([][2]float64, 10)
	n, ok := f.Stream(samples)
	if n != 10 || !ok || samples[9][0] != 1 {
		t.Fatalf("before fade: n=%d ok=%v last=%f", n, ok, samples[9][0])
	}

	f.start(100)
	samples = make([][2]float64, 64)
	total := 0
	last := 2.0
	for {
		n, ok := f.Stream(samples)
		for i := 0; i < n; i++ {
			if samples[i][0] > last {
				t.Fatalf("gain increased at sample %d", total+i)
			}
			last = samples[i][0]
		}
		total += n
		if !ok {
			break
		}
	}
	if total != 100 {
		t.Errorf("faded over %d samples, want 100", total)
	}
	if last > 0.02 {
		t.Errorf("final gain %f, want near zero", last)
	}
}

func TestFaderZeroDurationStops(t *testing.T) {
	f := &fader{streamer: constant(1)}
	f.start(0)
	if n, ok := f.Stream(make([][2]float64, 8)); n != 0 || ok {
		t.Errorf("Stream() = %d, %v; want 0, false", n, ok)
	}
}

func TestLoadMissingSoundsWarns(t *testing.T) {
	var out bytes.Buffer
	e := newEngine(testRate, &sync.Mutex{}, log.New(&out))
	e.load(Options{SoundDir: t.TempDir(), Music: filepath.Join(t.TempDir(), "missing.wav")})

	if len(e.cues) != 0 {
		t.Errorf("loaded %d cues from an empty dir", len(e.cues))
	}
	if e.music != nil {
		t.Error("music should be nil when the file is missing")
	}
	for _, want := range []string{"sound unavailable", "music unavailable"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("log missing %q:\n%s", want, out.String())
		}
	}

	// Missing sounds never break playback.
	e.Play(CueExplosion)
	e.StartMusic()
	e.FadeOut(time.Second)
}

func TestLoadSoundUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadSound(path, testRate); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func writeWAV(t *testing.T, path string, rate beep.SampleRate, d time.Duration) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Take(rate.N(d), constant(0.5)), format); err != nil {
		t.Fatal(err)
	}
}

func TestLoadCueFromDirResamples(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "shot.wav"), testRate/2, 200*time.Millisecond)

	var out bytes.Buffer
	e := newEngine(testRate, &sync.Mutex{}, log.New(&out))
	e.load(Options{SoundDir: dir})

	buf, ok := e.cues[CueShot]
	if !ok {
		t.Fatalf("shot cue not loaded:\n%s", out.String())
	}
	want := testRate.N(200 * time.Millisecond)
	if d := buf.Len() - want; d < -want/10 || d > want/10 {
		t.Errorf("resampled length %d, want about %d", buf.Len(), want)
	}
	if _, ok := e.cues[CueExplosion]; ok {
		t.Error("explosion cue should be missing")
	}
	if !strings.Contains(out.String(), "explosion") {
		t.Errorf("missing explosion cue not logged:\n%s", out.String())
	}
}

func TestNopPlayer(t *testing.T) {
	var p Player = Nop{}
	p.StartMusic()
	p.Play(CueShot)
	p.FadeOut(time.Second)
	if err := p.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
