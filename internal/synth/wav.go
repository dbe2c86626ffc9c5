package synth

import (
	"io"
	"os"

	wav "github.com/youpy/go-wav"
)

const (
	wavChannels      = 1
	wavBitsPerSample = 16
)

// WriteWAV encodes 16-bit mono PCM into a WAV container.
func WriteWAV(w io.Writer, samples []int16, sampleRate int) error {
	writer := wav.NewWriter(w, uint32(len(samples)), wavChannels, uint32(sampleRate), wavBitsPerSample)

	wavSamples := make([]wav.Sample, len(samples))
	for i, s := range samples {
		wavSamples[i].Values[0] = int(s)
	}
	return writer.WriteSamples(wavSamples)
}

// WriteWAVFile renders the WAV container to a file path.
func WriteWAVFile(path string, samples []int16, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteWAV(f, samples, sampleRate); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
