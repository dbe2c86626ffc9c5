package composer

import (
	"fmt"
	"strings"
)

// Mode is the diatonic mode of a key.
type Mode int

const (
	ModeMajor Mode = iota
	ModeMinor
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Key is a diatonic key: a tonic pitch class plus a mode. The 7-pitch scale
// is built once at construction and never changes during a generation run.
type Key struct {
	Tonic PitchClass
	Mode  Mode

	scale [7]PitchClass
}

// Scale interval patterns in semitones between consecutive degrees.
var (
	majorSteps = [6]int{2, 2, 1, 2, 2, 1}
	minorSteps = [6]int{2, 1, 2, 2, 1, 2} // natural minor
)

var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

var letterOrder = []byte{'C', 'D', 'E', 'F', 'G', 'A', 'B'}

// NewKey builds a key from a spelled tonic and mode.
func NewKey(tonic PitchClass, mode Mode) Key {
	k := Key{Tonic: tonic, Mode: mode}
	k.scale = buildScale(tonic, mode)
	return k
}

// DefaultKey is the substitute key used whenever a key name cannot be
// resolved: D minor.
func DefaultKey() Key {
	return NewKey(PitchClass{Name: "D", Semitone: 2}, ModeMinor)
}

// ParseKey resolves names like "D minor", "c# minor", "Eb major". A bare
// tonic with no mode follows the lowercase-means-minor convention, so "d"
// parses as D minor.
func ParseKey(name string) (Key, error) {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return Key{}, fmt.Errorf("empty key name")
	}

	tonicStr := fields[0]
	tonic, err := parseTonic(tonicStr)
	if err != nil {
		return Key{}, err
	}

	mode := ModeMajor
	if len(fields) >= 2 {
		switch strings.ToLower(fields[1]) {
		case "minor", "min", "m":
			mode = ModeMinor
		case "major", "maj":
			mode = ModeMajor
		default:
			return Key{}, fmt.Errorf("unknown mode %q", fields[1])
		}
	} else if tonicStr[0] >= 'a' && tonicStr[0] <= 'g' {
		// Lowercase bare tonic means minor ("d" -> D minor).
		mode = ModeMinor
	}

	return NewKey(tonic, mode), nil
}

func parseTonic(s string) (PitchClass, error) {
	if s == "" {
		return PitchClass{}, fmt.Errorf("empty tonic")
	}
	letter := s[0]
	if letter >= 'a' && letter <= 'g' {
		letter -= 'a' - 'A'
	}
	base, ok := letterSemitones[letter]
	if !ok {
		return PitchClass{}, fmt.Errorf("invalid tonic letter %q", s)
	}

	semitone := base
	name := string(letter)
	for _, r := range s[1:] {
		switch r {
		case '#', 's':
			semitone++
			name += "#"
		case 'b', '-':
			semitone--
			name += "b"
		default:
			return PitchClass{}, fmt.Errorf("invalid accidental in tonic %q", s)
		}
	}

	return PitchClass{Name: name, Semitone: ((semitone % 12) + 12) % 12}, nil
}

// buildScale spells the 7 diatonic degrees. Each degree uses the next letter
// name in sequence, with accidentals chosen to hit the required semitone, so
// C minor comes out C D Eb F G Ab Bb rather than C D D# F G G# A#.
func buildScale(tonic PitchClass, mode Mode) [7]PitchClass {
	steps := majorSteps
	if mode == ModeMinor {
		steps = minorSteps
	}

	var scale [7]PitchClass
	scale[0] = tonic

	tonicLetterIdx := 0
	for i, l := range letterOrder {
		if l == tonic.Name[0] {
			tonicLetterIdx = i
		}
	}

	semitone := tonic.Semitone
	for degree := 1; degree < 7; degree++ {
		semitone = (semitone + steps[degree-1]) % 12
		letter := letterOrder[(tonicLetterIdx+degree)%7]
		natural := letterSemitones[letter]

		// Accidental count relative to the natural letter pitch, normalized
		// to the nearest spelling (so 11 - 0 reads as -1, not +11).
		acc := semitone - natural
		for acc > 6 {
			acc -= 12
		}
		for acc < -6 {
			acc += 12
		}

		name := string(letter)
		for a := 0; a < acc; a++ {
			name += "#"
		}
		for a := 0; a > acc; a-- {
			name += "b"
		}

		scale[degree] = PitchClass{Name: name, Semitone: semitone}
	}

	return scale
}

// Scale returns the ordered 7-degree scale.
func (k Key) Scale() []PitchClass {
	return k.scale[:]
}

// Degree returns the scale pitch at the given index, taken modulo 7.
func (k Key) Degree(i int) PitchClass {
	return k.scale[((i%7)+7)%7]
}

// indexOf locates a pitch class in the scale by semitone. The bool reports
// whether the pitch belongs to this key at all.
func (k Key) indexOf(pc PitchClass) (int, bool) {
	for i, s := range k.scale {
		if s.Semitone == pc.Semitone {
			return i, true
		}
	}
	return 0, false
}

// Name returns e.g. "D minor".
func (k Key) Name() string {
	return k.Tonic.Name + " " + k.Mode.String()
}
