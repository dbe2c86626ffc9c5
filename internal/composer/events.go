package composer

import (
	"fmt"
	"math"
	"strconv"
)

// PitchClass is a spelled scale pitch without an octave, e.g. Eb or F#.
// Semitone is the pitch class in [0,11] relative to C.
type PitchClass struct {
	Name     string
	Semitone int
}

// Pitch is a concrete pitch: a spelled pitch class at an octave.
type Pitch struct {
	Class  PitchClass
	Octave int
}

// MIDI returns the MIDI note number (C4 = 60).
func (p Pitch) MIDI() int {
	return (p.Octave+1)*12 + p.Class.Semitone
}

// Frequency returns the fundamental frequency in Hz (A4 = 440).
func (p Pitch) Frequency() float64 {
	return 440.0 * math.Pow(2, float64(p.MIDI()-69)/12.0)
}

func (p Pitch) String() string {
	return p.Class.Name + strconv.Itoa(p.Octave)
}

// EventKind discriminates the event union (rest, single pitch, or pitch
// set). Merge and synthesis switch exhaustively on this instead of duck
// typing.
type EventKind int

const (
	KindRest EventKind = iota
	KindNote
	KindChord
)

// Event is one timed entry in a voice track or merged sequence.
// StartBeat is assigned once, as a running sum over the final sequence,
// so timing never depends on list position alone.
type Event struct {
	Kind      EventKind
	Pitches   []Pitch
	Beats     float64
	StartBeat float64
}

// NewNote returns a single-pitch event.
func NewNote(p Pitch, beats float64) Event {
	return Event{Kind: KindNote, Pitches: []Pitch{p}, Beats: beats}
}

// NewRest returns a silent event.
func NewRest(beats float64) Event {
	return Event{Kind: KindRest, Beats: beats}
}

// NewChord returns a simultaneous pitch-set event.
func NewChord(pitches []Pitch, beats float64) Event {
	return Event{Kind: KindChord, Pitches: pitches, Beats: beats}
}

// Track is an ordered voice of events. Cumulative time is the running sum of
// durations of the preceding events.
type Track []Event

// TotalBeats returns the summed duration of the track.
func (t Track) TotalBeats() float64 {
	total := 0.0
	for _, e := range t {
		total += e.Beats
	}
	return total
}

// AssignStartBeats stamps each event with its absolute start offset.
func (t Track) AssignStartBeats() {
	beat := 0.0
	for i := range t {
		t[i].StartBeat = beat
		beat += t[i].Beats
	}
}

func (e Event) String() string {
	switch e.Kind {
	case KindRest:
		return fmt.Sprintf("rest(%.2f)", e.Beats)
	case KindNote:
		return fmt.Sprintf("note(%s, %.2f)", e.Pitches[0], e.Beats)
	default:
		return fmt.Sprintf("chord(%v, %.2f)", e.Pitches, e.Beats)
	}
}
