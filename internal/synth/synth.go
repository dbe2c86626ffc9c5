// Package synth renders a composed event sequence into a sampled waveform.
// Each pitched event becomes a pure sine oscillator shaped by a linear ADSR
// envelope; contributions are summed additively into one shared buffer,
// which is clipped and quantized exactly once at the end.
package synth

import (
	"errors"
	"math"

	"github.com/resonata-labs/resonata-api/internal/composer"
)

// ErrUnavailable reports that waveform synthesis cannot run; callers are
// expected to fall back to an alternate rendering path rather than fail the
// whole request.
var ErrUnavailable = errors.New("synthesis unavailable")

// DefaultSampleRate is CD-rate mono.
const DefaultSampleRate = 44100

// Envelope timing and amplitude constants.
const (
	attackSeconds  = 0.01
	decaySeconds   = 0.1
	releaseSeconds = 0.2
	sustainLevel   = 0.7

	// Per-voice amplitudes: single notes get the full voice level, chord
	// constituents are scaled down so stacked pitches stay inside [-1, 1]
	// before the final clip.
	noteAmplitude  = 0.3
	chordAmplitude = 0.15
)

// Engine is the additive synthesizer. It is stateless between renders; the
// output buffer is exclusively owned by one render call and handed to the
// caller by return.
type Engine struct {
	sampleRate int
	enabled    bool
}

// NewEngine returns an engine at the given sample rate (DefaultSampleRate
// when zero or negative).
func NewEngine(sampleRate int) *Engine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Engine{sampleRate: sampleRate, enabled: true}
}

// Available reports whether this engine can render. The in-process additive
// path is always capable; the flag exists so a disabled engine surfaces as
// a capability-unavailable outcome instead of a partial buffer.
func (e *Engine) Available() bool {
	return e != nil && e.enabled
}

// SampleRate returns the configured output rate.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// Render synthesizes the piece into a float buffer, clipped to [-1, 1].
// Buffer length is round(totalBeats * 60/tempo * sampleRate).
func (e *Engine) Render(piece *composer.Piece) ([]float64, error) {
	if !e.Available() {
		return nil, ErrUnavailable
	}

	secondsPerBeat := 60.0 / float64(piece.Tempo)
	totalSeconds := piece.TotalBeats() * secondsPerBeat
	totalSamples := int(math.Round(totalSeconds * float64(e.sampleRate)))
	if totalSamples <= 0 {
		return nil, ErrUnavailable
	}

	buf := make([]float64, totalSamples)

	for _, event := range piece.Events {
		if event.Kind == composer.KindRest || len(event.Pitches) == 0 {
			continue
		}

		startTime := event.StartBeat * secondsPerBeat
		noteSeconds := event.Beats * secondsPerBeat

		startSample := int(startTime * float64(e.sampleRate))
		endSample := int((startTime + noteSeconds) * float64(e.sampleRate))
		numSamples := endSample - startSample
		if numSamples <= 0 || startSample >= totalSamples {
			continue
		}

		env := envelope(numSamples, e.sampleRate)

		amp := noteAmplitude
		if len(event.Pitches) > 1 {
			amp = chordAmplitude
		}

		for _, pitch := range event.Pitches {
			freq := pitch.Frequency()
			for i := 0; i < numSamples; i++ {
				idx := startSample + i
				if idx >= totalSamples {
					break // out-of-range tail truncated
				}
				t := sampleTime(i, numSamples, noteSeconds)
				buf[idx] += math.Sin(2*math.Pi*freq*t) * env[i] * amp
			}
		}
	}

	clip(buf)
	return buf, nil
}

// RenderPCM renders and quantizes to signed 16-bit in one call.
func (e *Engine) RenderPCM(piece *composer.Piece) ([]int16, error) {
	buf, err := e.Render(piece)
	if err != nil {
		return nil, err
	}
	return Quantize(buf), nil
}

// envelope builds the 4-stage amplitude curve over a note's sample span:
// linear attack, linear decay to the sustain plateau, hold, linear release
// to zero over the final stretch. Stages that do not fit the span are
// skipped, leaving the plateau value in place.
func envelope(numSamples, sampleRate int) []float64 {
	attack := int(attackSeconds * float64(sampleRate))
	decay := int(decaySeconds * float64(sampleRate))
	release := int(releaseSeconds * float64(sampleRate))

	env := make([]float64, numSamples)
	for i := range env {
		env[i] = sustainLevel
	}

	if numSamples > attack {
		for i := 0; i < attack; i++ {
			env[i] = ramp(0, 1, i, attack)
		}
	}
	if numSamples > attack+decay {
		for i := 0; i < decay; i++ {
			env[attack+i] = ramp(1, sustainLevel, i, decay)
		}
	}
	if numSamples > release {
		for i := 0; i < release; i++ {
			env[numSamples-release+i] = ramp(sustainLevel, 0, i, release)
		}
	}

	return env
}

// ramp interpolates linearly from a to b over n steps, endpoint included.
func ramp(a, b float64, i, n int) float64 {
	if n <= 1 {
		return a
	}
	return a + (b-a)*float64(i)/float64(n-1)
}

// sampleTime returns the oscillator time for sample i of a span covering
// noteSeconds, endpoint included.
func sampleTime(i, numSamples int, noteSeconds float64) float64 {
	if numSamples <= 1 {
		return 0
	}
	return noteSeconds * float64(i) / float64(numSamples-1)
}

func clip(buf []float64) {
	for i, v := range buf {
		if v > 1.0 {
			buf[i] = 1.0
		} else if v < -1.0 {
			buf[i] = -1.0
		}
	}
}

// Quantize converts a clipped float buffer to signed 16-bit samples.
func Quantize(buf []float64) []int16 {
	out := make([]int16, len(buf))
	for i, v := range buf {
		out[i] = int16(v * 32767)
	}
	return out
}
