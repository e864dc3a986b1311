package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/The-Unnamed-Official/Incremental-Node-Simulator/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
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
			val = rand.Float64()*2 - 1
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

// envelope applies a linear attack and release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s; attack and release are clipped to the duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	return &envelope{
		streamer:       s,
		attackSamples:  min(rate.N(attack), total),
		releaseSamples: min(rate.N(release), total),
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// tone describes one cue's synthesis
type tone struct {
	hz       float64
	duration time.Duration
	wave     WaveType
	// sweep is the end frequency as a multiple of hz, 0 for a flat tone
	sweep float64
}

var cueTones = [cueCount]tone{
	CueHit:     {hz: parameter.HitToneHz, duration: parameter.HitToneDuration, wave: WaveSquare},
	CueNodeDie: {hz: parameter.NodeDieToneHz, duration: parameter.NodeDieToneDuration, wave: WaveSaw, sweep: 0.5},
	CueBossDie: {hz: parameter.BossDieToneHz, duration: parameter.BossDieToneDuration, wave: WaveSaw, sweep: 0.25},
	CueBits:    {hz: parameter.BitsToneHz, duration: parameter.BitsToneDuration, wave: WaveSine},
	CueLevelUp: {hz: parameter.LevelUpToneHz, duration: parameter.LevelUpToneDuration, wave: WaveSine, sweep: 2},
	CueFail:    {hz: parameter.FailToneHz, duration: parameter.FailToneDuration, wave: WaveNoise},
}

// CreateCue synthesizes the streamer for c at the given volume
// Returns nil for CueNone
func CreateCue(c Cue, vol float64, rate beep.SampleRate) beep.Streamer {
	if c == CueNone || int(c) >= len(cueTones) {
		return nil
	}
	t := cueTones[c]

	var osc beep.Streamer
	if t.sweep > 0 {
		osc = newSweep(t.hz, t.hz*t.sweep, t.duration, rate)
	} else {
		osc = NewOscillator(t.hz, t.duration, t.wave, rate)
	}
	attack := t.duration / 10
	shaped := NewEnvelope(osc, t.duration, attack, t.duration/3, rate)
	return newVolume(shaped, vol*parameter.CueVolumeFloat)
}

// sweep is a sine gliding linearly from one frequency to another
type sweep struct {
	from, to float64
	phase    float64
	position int
	duration int
	rate     beep.SampleRate
}

func newSweep(from, to float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{from: from, to: to, duration: rate.N(d), rate: rate}
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.duration {
			return i, i > 0
		}
		progress := float64(s.position) / float64(s.duration)
		freq := s.from + (s.to-s.from)*progress
		val := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = val
		samples[i][1] = val
		s.phase += freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }
