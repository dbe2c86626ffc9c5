package synth

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonata-labs/resonata-api/internal/composer"
)

const testRate = 8000

func testPiece(events composer.Track, tempo int) *composer.Piece {
	events.AssignStartBeats()
	return &composer.Piece{
		Key:    composer.DefaultKey(),
		Tempo:  tempo,
		Events: events,
	}
}

func a4() composer.Pitch {
	return composer.Pitch{Class: composer.PitchClass{Name: "A", Semitone: 9}, Octave: 4}
}

func TestRenderBufferLength(t *testing.T) {
	engine := NewEngine(testRate)

	// 2 beats at 120 BPM is exactly one second of audio.
	piece := testPiece(composer.Track{composer.NewNote(a4(), 2.0)}, 120)
	buf, err := engine.Render(piece)
	require.NoError(t, err)
	assert.Len(t, buf, testRate)
}

func TestRenderOutputIsClipped(t *testing.T) {
	engine := NewEngine(testRate)

	// A dense stack of identical pitches would exceed unity without clipping.
	pitches := make([]composer.Pitch, 12)
	for i := range pitches {
		pitches[i] = a4()
	}
	piece := testPiece(composer.Track{composer.NewChord(pitches, 4.0)}, 60)

	buf, err := engine.Render(piece)
	require.NoError(t, err)
	for _, v := range buf {
		assert.LessOrEqual(t, v, 1.0)
		assert.GreaterOrEqual(t, v, -1.0)
	}
}

func TestRenderSkipsRests(t *testing.T) {
	engine := NewEngine(testRate)

	piece := testPiece(composer.Track{
		composer.NewRest(1.0),
		composer.NewNote(a4(), 1.0),
	}, 60)

	buf, err := engine.Render(piece)
	require.NoError(t, err)

	// The first beat is silence; the note starts at the one-second mark.
	for i := 0; i < testRate; i++ {
		assert.Zero(t, buf[i])
	}
	sounding := false
	for _, v := range buf[testRate:] {
		if v != 0 {
			sounding = true
			break
		}
	}
	assert.True(t, sounding)
}

func TestRenderUnavailableEngine(t *testing.T) {
	var nilEngine *Engine
	assert.False(t, nilEngine.Available())

	disabled := &Engine{sampleRate: testRate}
	assert.False(t, disabled.Available())

	piece := testPiece(composer.Track{composer.NewNote(a4(), 1.0)}, 60)
	_, err := disabled.Render(piece)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRenderEmptyPieceUnavailable(t *testing.T) {
	engine := NewEngine(testRate)
	_, err := engine.Render(testPiece(composer.Track{}, 60))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEnvelopeStages(t *testing.T) {
	numSamples := testRate // one second, long enough for all four stages
	env := envelope(numSamples, testRate)
	require.Len(t, env, numSamples)

	attack := int(attackSeconds * testRate)
	decay := int(decaySeconds * testRate)

	assert.Zero(t, env[0])
	assert.InDelta(t, 1.0, env[attack-1], 0.02)
	assert.InDelta(t, sustainLevel, env[attack+decay-1], 0.02)
	assert.InDelta(t, sustainLevel, env[numSamples/2], 0.001)
	assert.Zero(t, env[numSamples-1])
}

func TestEnvelopeShortNoteStaysBounded(t *testing.T) {
	// Too short for any stage: the sustain plateau alone survives.
	env := envelope(10, testRate)
	for _, v := range env {
		assert.Equal(t, sustainLevel, v)
	}
}

func TestQuantize(t *testing.T) {
	out := Quantize([]float64{0, 1.0, -1.0, 0.5})
	assert.Equal(t, []int16{0, 32767, -32767, 16383}, out)
}

func TestWriteWAVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWAV(&buf, []int16{0, 100, -100, 0}, testRate))

	data := buf.Bytes()
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[0:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestFluidSynthUnavailable(t *testing.T) {
	var nilFluid *FluidSynth
	assert.False(t, nilFluid.Available())

	missing := &FluidSynth{}
	assert.False(t, missing.Available())

	err := missing.Render(context.Background(), "in.mid", "out.wav")
	assert.ErrorIs(t, err, ErrUnavailable)
}
