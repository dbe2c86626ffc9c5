package composer

import (
	"math/rand"
)

// Contour is the intended melodic shape of a section.
type Contour string

const (
	ContourAscending  Contour = "ascending"
	ContourDescending Contour = "descending"
	ContourArch       Contour = "arch"
)

const (
	// Fresh-start scale index range when there is no previous note or the
	// previous note does not belong to the current scale.
	restartIdxLow  = 2
	restartIdxSpan = 3 // indices 2..4

	// Probability of the post-step index jitter.
	jitterProb = 0.2
	// Probability of an octave shift.
	octaveShiftProb = 0.3

	defaultOctave = 4
	octaveMin     = 3
	octaveMax     = 6
)

// Innovation tiers controlling step magnitude.
const (
	innovationLowCeil = 0.33
	innovationMidCeil = 0.66
)

var (
	stepsLow  = []int{1, 2}
	stepsMid  = []int{1, 2, 3}
	stepsHigh = []int{1, 2, 3, 4}
)

// Walker generates a melodic line one note at a time. State is the previous
// note only; it carries across measure and section boundaries. The random
// source is owned by the caller and scoped to a single generation run, so
// concurrent requests never share generator state, and a fixed seed
// reproduces the walk exactly.
type Walker struct {
	rng  *rand.Rand
	prev *Pitch
}

// NewWalker returns a walker drawing from the given per-run source.
func NewWalker(rng *rand.Rand) *Walker {
	return &Walker{rng: rng}
}

// Next produces the next melody pitch for the given key, contour, and
// innovation level.
func (w *Walker) Next(key Key, contour Contour, innovation float64) Pitch {
	// Direction. Arch re-rolls every note rather than fixing a direction per
	// section; the wandering inside arch sections is intended.
	var direction int
	switch contour {
	case ContourAscending:
		direction = 1
	case ContourDescending:
		direction = -1
	default:
		direction = []int{-1, 1}[w.rng.Intn(2)]
	}

	// Position in the scale. Restart in the middle range when there is no
	// previous note or it was spelled in some other key's scale.
	var currentIdx int
	if w.prev != nil {
		if idx, ok := key.indexOf(w.prev.Class); ok {
			currentIdx = idx
		} else {
			currentIdx = restartIdxLow + w.rng.Intn(restartIdxSpan)
		}
	} else {
		currentIdx = restartIdxLow + w.rng.Intn(restartIdxSpan)
	}

	steps := stepsLow
	switch {
	case innovation < innovationLowCeil:
		steps = stepsLow
	case innovation < innovationMidCeil:
		steps = stepsMid
	default:
		steps = stepsHigh
	}
	step := direction * steps[w.rng.Intn(len(steps))]

	// Wrap around the scale; the wrap itself never changes octave.
	newIdx := wrap7(currentIdx + step)
	if w.rng.Float64() < jitterProb {
		newIdx = wrap7(newIdx + []int{-1, 0, 1}[w.rng.Intn(3)])
	}

	octave := defaultOctave
	if w.prev != nil {
		octave = w.prev.Octave
	}
	if w.rng.Float64() < octaveShiftProb {
		octave += []int{-1, 0, 1}[w.rng.Intn(3)]
	}
	if octave < octaveMin {
		octave = octaveMin
	}
	if octave > octaveMax {
		octave = octaveMax
	}

	p := Pitch{Class: key.Degree(newIdx), Octave: octave}
	w.prev = &p
	return p
}

func wrap7(i int) int {
	return ((i % 7) + 7) % 7
}
