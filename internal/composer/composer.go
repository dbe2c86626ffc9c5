// Package composer turns a structural plan (key, tempo, ordered sections
// with chord-degree sequences and melodic contour) into a time-ordered
// sequence of pitched events. Generation is deterministic given the random
// source passed in: every probabilistic choice draws from that one per-run
// generator, never from package-global state.
package composer

import (
	"errors"
	"math/rand"

	"github.com/resonata-labs/resonata-api/internal/logger"
	"github.com/resonata-labs/resonata-api/internal/models"
)

// ErrEmptyComposition reports a plan that yields no usable measures even
// after fallback substitution. It is the only fatal condition in the
// composition pipeline.
var ErrEmptyComposition = errors.New("composition has no usable measures")

const (
	defaultTempo   = 70
	melodyVelocity = 96

	// Exported mirrors of the layout constants for callers and tests.
	BeatsPerMeasure = beatsPerMeasure
	TargetMeasures  = targetMeasures
)

// Piece is a finished composition: the merged, normalized event sequence
// with absolute start beats assigned, plus the resolved key and tempo.
type Piece struct {
	Key      Key
	Tempo    int
	Events   Track
	Measures int
}

// Compose renders the plan into a Piece. The key name is resolved leniently
// (unparseable keys fall back to D minor, logged but not fatal); an empty
// section list or zero total measures returns ErrEmptyComposition.
func Compose(plan *models.StructuralPlan, innovation float64, rng *rand.Rand) (*Piece, error) {
	if plan == nil || len(plan.Sections) == 0 {
		return nil, ErrEmptyComposition
	}

	key, err := ParseKey(plan.Key)
	if err != nil {
		logger.Warn("Unparseable key, using D minor", logger.Fields{
			"key":   plan.Key,
			"error": err.Error(),
		})
		key = DefaultKey()
	}

	walker := NewWalker(rng)
	melody, harmony, measures := RenderSections(plan.Sections, key, innovation, rng, walker)
	if measures == 0 {
		return nil, ErrEmptyComposition
	}

	merged := MergeVoices(harmony, melody)
	merged = NormalizeDuration(merged, measures, key, innovation, walker)
	merged.AssignStartBeats()

	tempo := plan.Tempo
	if tempo <= 0 {
		tempo = defaultTempo
	}

	return &Piece{
		Key:      key,
		Tempo:    tempo,
		Events:   merged,
		Measures: measures,
	}, nil
}

// Timeline flattens the piece into the exported note-event form, one entry
// per pitch with absolute beat timing. Rests are omitted.
func (p *Piece) Timeline() []models.NoteEvent {
	var timeline []models.NoteEvent
	for _, e := range p.Events {
		if e.Kind == KindRest {
			continue
		}
		for _, pitch := range e.Pitches {
			timeline = append(timeline, models.NoteEvent{
				MidiNoteNumber: pitch.MIDI(),
				Velocity:       melodyVelocity,
				StartBeats:     e.StartBeat,
				DurationBeats:  e.Beats,
			})
		}
	}
	return timeline
}

// TotalBeats returns the summed duration of the final sequence.
func (p *Piece) TotalBeats() float64 {
	return p.Events.TotalBeats()
}

// DurationSeconds converts the piece length to wall-clock seconds at its
// tempo.
func (p *Piece) DurationSeconds() float64 {
	return p.TotalBeats() * 60.0 / float64(p.Tempo)
}
