package composer

import (
	"math/rand"

	"github.com/resonata-labs/resonata-api/internal/models"
)

const (
	beatsPerMeasure = 4.0

	// Harmony-voice layout: a long bass note on beat 1, then either a block
	// chord or a rest filling the second half of the measure.
	bassOctave     = 3
	bassBeats      = 2.0
	blockChordProb = 0.5
	blockChordSize = 3

	// Melody-voice layout: 2-4 notes evenly subdividing the measure, each
	// occasionally doubled by a harmony note at the chord's second pitch.
	melodyNotesMin  = 2
	melodyNotesSpan = 3 // 2..4
	doublingProb    = 0.3
)

// defaultSectionChords fills in for a section that names no chords at all.
var defaultSectionChords = []string{"i", "V", "i"}

// RenderSections walks the plan's sections in order and produces the two
// voice tracks: the harmony voice (bass plus optional block chords) and the
// melody voice. The walker carries its previous-note state across measure
// and section boundaries. Returns both tracks plus the total measure count.
func RenderSections(sections []models.Section, key Key, innovation float64, rng *rand.Rand, walker *Walker) (melody, harmony Track, measures int) {
	for _, section := range sections {
		chords := section.Chords
		if len(chords) == 0 {
			chords = defaultSectionChords
		}
		contour := Contour(section.MelodicContour)

		for measureIdx := 0; measureIdx < section.Measures; measureIdx++ {
			// Map the measure proportionally onto the chord sequence; the
			// last chord holds when the division is uneven.
			chordIdx := (measureIdx * len(chords)) / section.Measures
			if chordIdx >= len(chords) {
				chordIdx = len(chords) - 1
			}
			chord := ResolveHarmony(chords[chordIdx], key, innovation, rng)

			harmony = append(harmony, NewNote(Pitch{Class: chord[0], Octave: bassOctave}, bassBeats))
			if rng.Float64() < blockChordProb {
				block := make([]Pitch, 0, blockChordSize)
				for _, pc := range chord[:blockChordSize] {
					block = append(block, Pitch{Class: pc, Octave: bassOctave})
				}
				harmony = append(harmony, NewChord(block, bassBeats))
			} else {
				harmony = append(harmony, NewRest(bassBeats))
			}

			notesInMeasure := melodyNotesMin + rng.Intn(melodyNotesSpan)
			noteBeats := beatsPerMeasure / float64(notesInMeasure)
			for n := 0; n < notesInMeasure; n++ {
				note := walker.Next(key, contour, innovation)
				melody = append(melody, NewNote(note, noteBeats))

				// Voice-doubling decoration: appended after the melody note
				// in the same voice, extending its running offset.
				if rng.Float64() < doublingProb && len(chord) > 1 {
					double := Pitch{Class: chord[1], Octave: note.Octave}
					melody = append(melody, NewNote(double, noteBeats))
				}
			}

			measures++
		}
	}

	return melody, harmony, measures
}
