// Package midi writes a minimal standard MIDI file (format 0, one track)
// from the exported event timeline. It covers exactly what the download and
// fluidsynth paths need (tempo meta event plus note on/off pairs) and is
// not a general MIDI toolkit.
package midi

import (
	"encoding/binary"
	"io"
	"os"
	"sort"

	"github.com/resonata-labs/resonata-api/internal/models"
)

// TicksPerBeat is the SMF division used for all exports.
const TicksPerBeat = 480

const (
	pianoChannel  = 0
	microsPerMin  = 60_000_000
	noteOnStatus  = 0x90
	noteOffStatus = 0x80
)

type event struct {
	tick int
	data []byte
}

// Encode writes a format-0 SMF containing the timeline at the given tempo.
func Encode(w io.Writer, tempo int, notes []models.NoteEvent) error {
	if tempo <= 0 {
		tempo = 70
	}

	var events []event

	// Tempo meta event at tick 0.
	usPerBeat := microsPerMin / tempo
	events = append(events, event{
		tick: 0,
		data: []byte{0xFF, 0x51, 0x03, byte(usPerBeat >> 16), byte(usPerBeat >> 8), byte(usPerBeat)},
	})

	for _, n := range notes {
		if n.MidiNoteNumber < 0 || n.MidiNoteNumber > 127 {
			continue
		}
		vel := n.Velocity
		if vel < 1 {
			vel = 1
		}
		if vel > 127 {
			vel = 127
		}

		on := int(n.StartBeats * TicksPerBeat)
		off := int((n.StartBeats + n.DurationBeats) * TicksPerBeat)
		if off <= on {
			off = on + 1
		}

		events = append(events, event{
			tick: on,
			data: []byte{noteOnStatus | pianoChannel, byte(n.MidiNoteNumber), byte(vel)},
		})
		events = append(events, event{
			tick: off,
			data: []byte{noteOffStatus | pianoChannel, byte(n.MidiNoteNumber), 0},
		})
	}

	// Stable sort keeps note-off before a same-tick note-on of the same
	// pitch from reordering arbitrarily.
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].tick < events[j].tick
	})

	var track []byte
	lastTick := 0
	for _, e := range events {
		track = append(track, encodeVarLen(e.tick-lastTick)...)
		track = append(track, e.data...)
		lastTick = e.tick
	}
	// End of track.
	track = append(track, 0x00, 0xFF, 0x2F, 0x00)

	// Header chunk: format 0, one track.
	header := []byte{'M', 'T', 'h', 'd', 0, 0, 0, 6, 0, 0, 0, 1}
	header = binary.BigEndian.AppendUint16(header, TicksPerBeat)
	if _, err := w.Write(header); err != nil {
		return err
	}

	trackHeader := []byte{'M', 'T', 'r', 'k'}
	trackHeader = binary.BigEndian.AppendUint32(trackHeader, uint32(len(track)))
	if _, err := w.Write(trackHeader); err != nil {
		return err
	}
	_, err := w.Write(track)
	return err
}

// WriteFile encodes the timeline to a file path.
func WriteFile(path string, tempo int, notes []models.NoteEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, tempo, notes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// encodeVarLen encodes a tick delta as a MIDI variable-length quantity.
func encodeVarLen(value int) []byte {
	if value < 0 {
		value = 0
	}
	buf := []byte{byte(value & 0x7F)}
	value >>= 7
	for value > 0 {
		buf = append([]byte{byte((value & 0x7F) | 0x80)}, buf...)
		value >>= 7
	}
	return buf
}
