package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// ErrUnsupportedFormat is returned for sound files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// cueFiles maps each cue to its base file name inside the sound directory.
var cueFiles = map[Cue]string{
	CueShot:      "shot",
	CueExplosion: "boom",
}

// Options configures an Engine.
type Options struct {
	SampleRate int
	// SoundDir holds shot and boom files (.wav or .mp3). Empty means
	// synthesized cues.
	SoundDir string
	// Music is a .wav or .mp3 file looped during play. Empty means a
	// synthesized loop.
	Music string
}

// Engine plays cues and music through the system speaker.
type Engine struct {
	rate   beep.SampleRate
	mixer  *beep.Mixer
	lock   sync.Locker
	logger *log.Logger

	cues  map[Cue]*beep.Buffer
	music *beep.Buffer
	fader *fader

	closeFn func()
}

var _ Player = (*Engine)(nil)

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// New opens the speaker and loads every sound. A sound that fails to load
// is logged and stays silent; only a speaker failure is an error.
func New(opts Options, logger *log.Logger) (*Engine, error) {
	rate := beep.SampleRate(opts.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	e := newEngine(rate, speakerLock{}, logger)
	e.closeFn = speaker.Close
	e.load(opts)
	speaker.Play(e.mixer)
	return e, nil
}

func newEngine(rate beep.SampleRate, lock sync.Locker, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		rate:   rate,
		mixer:  &beep.Mixer{},
		lock:   lock,
		logger: logger,
		cues:   make(map[Cue]*beep.Buffer),
	}
}

func (e *Engine) load(opts Options) {
	if opts.SoundDir == "" {
		e.cues[CueShot] = synthShot(e.rate)
		e.cues[CueExplosion] = synthExplosion(e.rate)
	} else {
		for cue, name := range cueFiles {
			buf, err := loadCue(opts.SoundDir, name, e.rate)
			if err != nil {
				e.logger.Warn("sound unavailable", "cue", cue.String(), "dir", opts.SoundDir, "err", err)
				continue
			}
			e.cues[cue] = buf
		}
	}

	if opts.Music == "" {
		e.music = synthMusic(e.rate)
		return
	}
	buf, err := loadSound(opts.Music, e.rate)
	if err != nil {
		e.logger.Warn("music unavailable", "path", opts.Music, "err", err)
		return
	}
	e.music = buf
}

// Play starts cue c on top of whatever is playing.
func (e *Engine) Play(c Cue) {
	buf, ok := e.cues[c]
	if !ok || buf.Len() == 0 {
		return
	}
	e.lock.Lock()
	e.mixer.Add(buf.Streamer(0, buf.Len()))
	e.lock.Unlock()
}

// StartMusic loops the music until FadeOut. Calling it again while music is
// playing does nothing.
func (e *Engine) StartMusic() {
	if e.music == nil || e.music.Len() == 0 {
		return
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.fader != nil && !e.fader.done() {
		return
	}
	e.fader = &fader{streamer: beep.Loop(-1, e.music.Streamer(0, e.music.Len()))}
	e.mixer.Add(e.fader)
}

// FadeOut ramps the music to silence over d and then stops it.
func (e *Engine) FadeOut(d time.Duration) {
	e.lock.Lock()
	defer e.lock.Unlock()
	if e.fader != nil {
		e.fader.start(e.rate.N(d))
	}
}

// Close silences everything and releases the speaker.
func (e *Engine) Close() error {
	e.lock.Lock()
	e.mixer.Clear()
	e.lock.Unlock()
	if e.closeFn != nil {
		e.closeFn()
	}
	return nil
}

// loadCue loads the first existing name.wav or name.mp3 in dir.
func loadCue(dir, name string, rate beep.SampleRate) (*beep.Buffer, error) {
	for _, ext := range []string{".wav", ".mp3"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return loadSound(path, rate)
		}
	}
	return nil, fmt.Errorf("%s: %w", filepath.Join(dir, name), os.ErrNotExist)
}

// loadSound decodes a WAV or MP3 file into a buffer at rate.
func loadSound(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != rate {
		s = beep.Resample(4, format.SampleRate, rate, streamer)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf, nil
}

// fader passes its streamer through at full volume until start is called,
// then ramps linearly to zero and drains.
type fader struct {
	streamer beep.Streamer
	total    int // Ramp length in samples; 0 means not fading
	left     int
	finished bool
}

func (f *fader) start(samples int) {
	if f.total > 0 {
		return
	}
	if samples <= 0 {
		f.finished = true
		return
	}
	f.total = samples
	f.left = samples
}

func (f *fader) done() bool {
	return f.finished
}

func (f *fader) Stream(samples [][2]float64) (n int, ok bool) {
	if f.finished {
		return 0, false
	}
	if f.total > 0 && len(samples) > f.left {
		samples = samples[:f.left]
	}
	n, ok = f.streamer.Stream(samples)
	if f.total > 0 {
		for i := 0; i < n; i++ {
			gain := float64(f.left-i) / float64(f.total)
			samples[i][0] *= gain
			samples[i][1] *= gain
		}
		f.left -= n
		if f.left <= 0 {
			f.finished = true
		}
	}
	if !ok {
		f.finished = true
	}
	return n, n > 0 || ok
}

func (f *fader) Err() error { return f.streamer.Err() }
