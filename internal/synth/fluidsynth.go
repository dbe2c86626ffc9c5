package synth

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
)

// Soundfont locations probed in order when none is configured.
var defaultSoundfontPaths = []string{
	"/usr/share/sounds/sf2/FluidR3_GM.sf2",
	"/usr/share/sounds/sf2/default.sf2",
	"/opt/homebrew/share/fluidsynth/soundfonts/FluidR3_GM.sf2",
}

// FluidSynth is the alternate rendering path: an external command-line
// synthesizer that turns a MIDI artifact into a WAV file. When the binary
// or a soundfont is missing, Available reports false and the caller simply
// skips this path.
type FluidSynth struct {
	binPath   string
	soundfont string
}

// NewFluidSynth probes for the fluidsynth binary and a usable soundfont.
// soundfontPath, when non-empty, overrides the probe list.
func NewFluidSynth(soundfontPath string) *FluidSynth {
	f := &FluidSynth{}

	bin, err := exec.LookPath("fluidsynth")
	if err != nil {
		return f
	}
	f.binPath = bin

	if soundfontPath != "" {
		if _, err := os.Stat(soundfontPath); err == nil {
			f.soundfont = soundfontPath
		}
		return f
	}
	for _, sf := range defaultSoundfontPaths {
		if _, err := os.Stat(sf); err == nil {
			f.soundfont = sf
			break
		}
	}
	return f
}

// Available reports whether the external renderer can run.
func (f *FluidSynth) Available() bool {
	return f != nil && f.binPath != "" && f.soundfont != ""
}

// Render converts a MIDI file to WAV via the external synthesizer.
func (f *FluidSynth) Render(ctx context.Context, midiPath, wavPath string) error {
	if !f.Available() {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, f.binPath, "-F", wavPath, "-q", f.soundfont, midiPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("fluidsynth failed: %w\nstderr: %s", err, stderr.String())
	}
	return nil
}
