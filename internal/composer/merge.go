package composer

// MergeVoices combines the harmony (left) and melody (right) voices into one
// sequence. Voices are paired by list index, not by elapsed time: once the
// voices emit different event counts per measure they drift out of temporal
// alignment between hands. That drift is a known fidelity limitation of the
// pairing model and is kept as-is rather than corrected.
//
// At each index, pitches from whichever voices still have an event are
// collected into a single event. Two or more pitches merge into a chord
// whose duration comes from the left voice when it has an event at that
// index; a lone pitch keeps its own source duration. Rests contribute no
// pitches and are dropped when the other voice sounds.
func MergeVoices(left, right Track) Track {
	maxLen := len(left)
	if len(right) > maxLen {
		maxLen = len(right)
	}

	merged := make(Track, 0, maxLen)
	for i := 0; i < maxLen; i++ {
		var pitches []Pitch
		var single Event
		contributions := 0

		if i < len(left) && left[i].Kind != KindRest {
			pitches = append(pitches, left[i].Pitches...)
			single = left[i]
			contributions++
		}
		if i < len(right) && right[i].Kind != KindRest {
			pitches = append(pitches, right[i].Pitches...)
			if contributions == 0 {
				single = right[i]
			}
			contributions++
		}

		switch {
		case len(pitches) == 0:
			// Both silent or exhausted at this index; nothing to emit.
		case len(pitches) == 1:
			merged = append(merged, NewNote(pitches[0], single.Beats))
		default:
			beats := single.Beats
			if i < len(left) {
				beats = left[i].Beats
			}
			merged = append(merged, NewChord(pitches, beats))
		}
	}

	return merged
}
