package composer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkerStaysInOctaveRange(t *testing.T) {
	key := DefaultKey()
	walker := NewWalker(rand.New(rand.NewSource(3)))

	for i := 0; i < 1000; i++ {
		p := walker.Next(key, ContourArch, 0.9)
		assert.GreaterOrEqual(t, p.Octave, 3)
		assert.LessOrEqual(t, p.Octave, 6)
	}
}

func TestWalkerPitchesBelongToScale(t *testing.T) {
	key, err := ParseKey("Eb major")
	require.NoError(t, err)
	walker := NewWalker(rand.New(rand.NewSource(5)))

	for i := 0; i < 200; i++ {
		p := walker.Next(key, ContourAscending, 0.5)
		inScale(t, key, p.Class)
	}
}

func TestWalkerSeedDeterminism(t *testing.T) {
	key := DefaultKey()

	a := NewWalker(rand.New(rand.NewSource(99)))
	b := NewWalker(rand.New(rand.NewSource(99)))

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(key, ContourArch, 0.5), b.Next(key, ContourArch, 0.5))
	}
}

func TestWalkerDifferentSeedsDiverge(t *testing.T) {
	key := DefaultKey()

	a := NewWalker(rand.New(rand.NewSource(1)))
	b := NewWalker(rand.New(rand.NewSource(2)))

	same := true
	for i := 0; i < 100; i++ {
		if a.Next(key, ContourArch, 0.5) != b.Next(key, ContourArch, 0.5) {
			same = false
		}
	}
	assert.False(t, same)
}

func TestWalkerRestartAfterKeyChange(t *testing.T) {
	dMinor := DefaultKey()
	ebMajor, err := ParseKey("Eb major")
	require.NoError(t, err)

	walker := NewWalker(rand.New(rand.NewSource(11)))
	walker.Next(dMinor, ContourAscending, 0.2)

	// After switching scales the walker restarts cleanly; the produced pitch
	// must belong to the new key.
	p := walker.Next(ebMajor, ContourAscending, 0.2)
	inScale(t, ebMajor, p.Class)
}
