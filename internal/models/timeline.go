package models

import "time"

// NoteEvent is a single pitch in the exported event timeline, with absolute
// timing in beats. Simultaneous pitches (chords) share StartBeats. This is
// the shape handed to MIDI export and returned to API clients.
type NoteEvent struct {
	MidiNoteNumber int     `json:"midiNoteNumber"`
	Velocity       int     `json:"velocity"`
	StartBeats     float64 `json:"startBeats"`
	DurationBeats  float64 `json:"durationBeats"`
}

// PieceMetadata describes a generated artifact pair, persisted in the store
// for 24 hours so recent pieces can be listed and re-downloaded.
type PieceMetadata struct {
	ID             string    `json:"id"`
	Key            string    `json:"key"`
	Tempo          int       `json:"tempo"`
	Mood           string    `json:"mood"`
	Innovation     float64   `json:"innovation"`
	PlanSource     string    `json:"plan_source"`
	Measures       int       `json:"measures"`
	TotalBeats     float64   `json:"total_beats"`
	AudioAvailable bool      `json:"audio_available"`
	CreatedAt      time.Time `json:"created_at"`
}
