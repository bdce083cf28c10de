// Package sfx synthesises the short sound cues that accompany stand
// abilities and encodes them as WAV.
package sfx

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// SampleRate is used for every cue.
const SampleRate = beep.SampleRate(44100)

// Cue names a sound effect.
type Cue int

const (
	CueBombPlace Cue = iota
	CueExplosion
	CueHeatSeeking
	CueRealityReset
	CueMenacing
)

// String returns the cue name, also used as its file stem.
func (c Cue) String() string {
	switch c {
	case CueBombPlace:
		return "bomb_place"
	case CueExplosion:
		return "explosion"
	case CueHeatSeeking:
		return "sheer_heart_attack"
	case CueRealityReset:
		return "bites_the_dust"
	case CueMenacing:
		return "menacing"
	default:
		return "unknown"
	}
}

// Caption is the onomatopoeia shown when the cue plays.
func (c Cue) Caption() string {
	switch c {
	case CueBombPlace:
		return "*Click* - Bomb armed"
	case CueExplosion:
		return "BOOOOM!"
	case CueHeatSeeking:
		return "*Mechanical whirring* SHEER HEART ATTACK!"
	case CueRealityReset:
		return "*Time reversal* BITES THE DUST!"
	case CueMenacing:
		return "Menacing..."
	default:
		return "*Unknown sound effect*"
	}
}

// AllCues lists every cue in declaration order.
func AllCues() []Cue {
	return []Cue{CueBombPlace, CueExplosion, CueHeatSeeking, CueRealityReset, CueMenacing}
}

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator that stops after duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// fade scales a stream linearly from full volume down to silence.
type fade struct {
	streamer beep.Streamer
	position int
	total    int
}

func newFade(s beep.Streamer, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &fade{streamer: s, total: rate.N(duration)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1 - float64(f.position)/float64(f.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.position++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// Duration returns the length of a cue.
func (c Cue) Duration() time.Duration {
	switch c {
	case CueBombPlace:
		return 60 * time.Millisecond
	case CueExplosion:
		return 600 * time.Millisecond
	case CueHeatSeeking:
		return 400 * time.Millisecond
	case CueRealityReset:
		return 800 * time.Millisecond
	default:
		return 300 * time.Millisecond
	}
}

// Streamer builds a fresh streamer for the cue.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	d := c.Duration()
	switch c {
	case CueBombPlace:
		return NewOscillator(1800, d, WaveSquare, rate)
	case CueExplosion:
		return beep.Take(rate.N(d), newFade(beep.Mix(
			NewOscillator(55, d, WaveSine, rate),
			NewOscillator(1, d, WaveNoise, rate),
		), d, rate))
	case CueHeatSeeking:
		return beep.Seq(
			NewOscillator(220, d/2, WaveSaw, rate),
			NewOscillator(330, d/2, WaveSaw, rate),
		)
	case CueRealityReset:
		// Descending sweep, like time running backwards
		return newFade(beep.Seq(
			NewOscillator(880, d/4, WaveSine, rate),
			NewOscillator(660, d/4, WaveSine, rate),
			NewOscillator(440, d/4, WaveSine, rate),
			NewOscillator(220, d/4, WaveSine, rate),
		), d, rate)
	default:
		return NewOscillator(70, d, WaveSaw, rate)
	}
}

// WriteWAV encodes the cue as 16-bit stereo WAV.
func WriteWAV(w io.WriteSeeker, c Cue) error {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(w, c.Streamer(SampleRate), format); err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	return nil
}
