package composer

import (
	"math/rand"
)

// Harmonic-function table: Roman-numeral symbol to scale-degree indices.
// Indices run past 6 on purpose; Degree() wraps them modulo 7.
var chordDegrees = map[string][3]int{
	"i":   {0, 2, 4},  // tonic
	"iv":  {3, 5, 7},  // subdominant
	"V":   {4, 6, 8},  // dominant
	"VI":  {5, 7, 9},  // submediant
	"VII": {6, 8, 10}, // leading tone
}

const (
	// Extensions only appear above this innovation level.
	extensionInnovationFloor = 0.5
	// Probability of appending an extension once the gate is open.
	extensionProb = 0.3
	// Degree offsets from the chord root for the two extension flavors.
	seventhOffset = 6
	ninthOffset   = 8
)

// ResolveHarmony maps a harmonic-function symbol to an ordered pitch-class
// chord in the given key. Unknown symbols resolve as the tonic triad; there
// is no error path. At innovation above 0.5 a 7th- or 9th-flavored extra
// degree is occasionally appended, so the result always has at least 3
// pitches and sometimes 4.
func ResolveHarmony(symbol string, key Key, innovation float64, rng *rand.Rand) []PitchClass {
	intervals, ok := chordDegrees[symbol]
	if !ok {
		intervals = chordDegrees["i"]
	}

	chord := make([]PitchClass, 0, 4)
	for _, degree := range intervals {
		chord = append(chord, key.Degree(degree))
	}

	if innovation > extensionInnovationFloor && rng.Float64() < extensionProb {
		if rng.Float64() < 0.5 {
			chord = append(chord, key.Degree(intervals[0]+seventhOffset))
		} else {
			chord = append(chord, key.Degree(intervals[0]+ninthOffset))
		}
	}

	return chord
}
