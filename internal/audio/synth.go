package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type wave int

const (
	waveSine wave = iota
	waveSquare
	waveNoise
)

// oscillator generates a fixed-length tone. A non-zero sweep changes the
// frequency linearly by sweep Hz per second.
type oscillator struct {
	freq     float64
	sweep    float64
	phase    float64
	length   int
	position int
	wave     wave
	rate     beep.SampleRate
	noise    *rand.Rand
}

func newOscillator(freq, sweep float64, d time.Duration, w wave, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:   freq,
		sweep:  sweep,
		length: rate.N(d),
		wave:   w,
		rate:   rate,
		noise:  rand.New(rand.NewSource(1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case waveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case waveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case waveNoise:
			val = o.noise.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		t := float64(o.position) / float64(o.rate)
		o.phase += (o.freq + o.sweep*t) / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// decay shapes a stream with a linear attack and an exponential tail.
type decay struct {
	streamer beep.Streamer
	attack   int
	rate     float64 // Tail time constant in samples
	position int
}

func newDecay(s beep.Streamer, attack, tail time.Duration, rate beep.SampleRate) *decay {
	return &decay{
		streamer: s,
		attack:   rate.N(attack),
		rate:     float64(rate.N(tail)),
	}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if d.position < d.attack {
			gain = float64(d.position) / float64(d.attack)
		} else if d.rate > 0 {
			gain = math.Exp(-float64(d.position-d.attack) / d.rate)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// render streams d of s into a buffer at the given rate.
func render(s beep.Streamer, d time.Duration, rate beep.SampleRate) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	buf.Append(beep.Take(rate.N(d), s))
	return buf
}

// synthShot is a short falling square chirp.
func synthShot(rate beep.SampleRate) *beep.Buffer {
	const d = 120 * time.Millisecond
	osc := newOscillator(1400, -8000, d, waveSquare, rate)
	return render(withVolume(newDecay(osc, 2*time.Millisecond, 40*time.Millisecond, rate), 0.25), d, rate)
}

// synthExplosion is a noise burst over a low rumble.
func synthExplosion(rate beep.SampleRate) *beep.Buffer {
	const d = 450 * time.Millisecond
	noise := newOscillator(0, 0, d, waveNoise, rate)
	rumble := newOscillator(70, -60, d, waveSine, rate)
	mixed := beep.Mix(withVolume(noise, 0.6), withVolume(rumble, 0.5))
	return render(withVolume(newDecay(mixed, 5*time.Millisecond, 120*time.Millisecond, rate), 0.5), d, rate)
}

// synthMusic is a one-bar bass and kick pattern meant to be looped.
func synthMusic(rate beep.SampleRate) *beep.Buffer {
	const beat = 500 * time.Millisecond
	notes := []float64{55, 55, 65.41, 49}

	streams := make([]beep.Streamer, 0, len(notes))
	for _, f := range notes {
		bass := newDecay(newOscillator(f, 0, beat, waveSine, rate), 10*time.Millisecond, 300*time.Millisecond, rate)
		kick := newDecay(newOscillator(120, -160, beat, waveSine, rate), time.Millisecond, 40*time.Millisecond, rate)
		streams = append(streams, beep.Take(rate.N(beat), beep.Mix(withVolume(bass, 0.3), withVolume(kick, 0.4))))
	}
	return render(withVolume(beep.Seq(streams...), 0.5), beat*time.Duration(len(notes)), rate)
}
