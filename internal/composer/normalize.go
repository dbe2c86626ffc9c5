package composer

// Duration floor: generated pieces are padded out to at least this many
// measures so the rendered audio lands in the 30-45 second range at typical
// tempos.
const targetMeasures = 12

const padNoteBeats = 2.0

// NormalizeDuration pads the merged sequence with closing bass-and-melody
// pairs (contour forced to descending) until the piece reaches the target
// measure count. Sequences already at or past the target are returned
// untouched; there is no trimming branch for overlong pieces.
func NormalizeDuration(seq Track, measures int, key Key, innovation float64, walker *Walker) Track {
	for m := measures; m < targetMeasures; m++ {
		bass := Pitch{Class: key.Degree(0), Octave: bassOctave}
		seq = append(seq, NewNote(bass, padNoteBeats))

		note := walker.Next(key, ContourDescending, innovation)
		seq = append(seq, NewNote(note, padNoteBeats))
	}
	return seq
}
