package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyMinorSpelling(t *testing.T) {
	key, err := ParseKey("C minor")
	require.NoError(t, err)

	names := make([]string, 0, 7)
	for _, pc := range key.Scale() {
		names = append(names, pc.Name)
	}
	// Flats, not enharmonic sharps.
	assert.Equal(t, []string{"C", "D", "Eb", "F", "G", "Ab", "Bb"}, names)
}

func TestParseKeyMajorSpelling(t *testing.T) {
	key, err := ParseKey("Eb major")
	require.NoError(t, err)

	names := make([]string, 0, 7)
	for _, pc := range key.Scale() {
		names = append(names, pc.Name)
	}
	assert.Equal(t, []string{"Eb", "F", "G", "Ab", "Bb", "C", "D"}, names)
}

func TestParseKeySharpTonic(t *testing.T) {
	key, err := ParseKey("c# minor")
	require.NoError(t, err)
	assert.Equal(t, "C#", key.Tonic.Name)
	assert.Equal(t, ModeMinor, key.Mode)
	assert.Equal(t, "C# minor", key.Name())
}

func TestParseKeyLowercaseBareTonicIsMinor(t *testing.T) {
	key, err := ParseKey("d")
	require.NoError(t, err)
	assert.Equal(t, ModeMinor, key.Mode)
	assert.Equal(t, "D minor", key.Name())
}

func TestParseKeyUppercaseBareTonicIsMajor(t *testing.T) {
	key, err := ParseKey("G")
	require.NoError(t, err)
	assert.Equal(t, ModeMajor, key.Mode)
}

func TestParseKeyInvalid(t *testing.T) {
	_, err := ParseKey("")
	assert.Error(t, err)

	_, err = ParseKey("H major")
	assert.Error(t, err)

	_, err = ParseKey("D dorian")
	assert.Error(t, err)
}

func TestDefaultKey(t *testing.T) {
	key := DefaultKey()
	assert.Equal(t, "D minor", key.Name())
	assert.Equal(t, 2, key.Tonic.Semitone)
}

func TestDegreeWraps(t *testing.T) {
	key := DefaultKey()
	assert.Equal(t, key.Degree(0), key.Degree(7))
	assert.Equal(t, key.Degree(3), key.Degree(10))
	assert.Equal(t, key.Degree(6), key.Degree(-1))
}

func TestPitchMIDIAndFrequency(t *testing.T) {
	middleC := Pitch{Class: PitchClass{Name: "C", Semitone: 0}, Octave: 4}
	assert.Equal(t, 60, middleC.MIDI())

	a4 := Pitch{Class: PitchClass{Name: "A", Semitone: 9}, Octave: 4}
	assert.Equal(t, 69, a4.MIDI())
	assert.InDelta(t, 440.0, a4.Frequency(), 1e-9)
}
