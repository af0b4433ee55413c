// Package audioexport drains sidbridge's audio ring buffer to a standard
// WAV file, the offline counterpart to the live AudioPort consumer
// described in SPEC_FULL.md's concurrency model: same Drain call, written
// to a file instead of a sound device.
package audioexport

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// audioFormatPCM is the WAV fmt-chunk's format code for uncompressed PCM.
const audioFormatPCM = 1

// bitDepth is fixed at 16 bits, matching sidbridge.Drain's []int16 samples.
const bitDepth = 16

// Writer accumulates drained samples and flushes them to a WAV file on
// Close.
type Writer struct {
	enc *wav.Encoder
	f   *os.File
}

// Source is anything that can drain buffered samples the way
// sidbridge.Bridge does.
type Source interface {
	Drain(out []int16) int
}

// Create opens filename and prepares a mono, 16-bit PCM WAV encoder at the
// given sample rate.
func Create(filename string, sampleRate int) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	enc := wav.NewEncoder(f, sampleRate, bitDepth, 1, audioFormatPCM)
	return &Writer{enc: enc, f: f}, nil
}

// DrainFrom pulls every sample src currently has buffered and appends it to
// the WAV stream; call once per frame (or however often the caller steps
// the machine) for as long as recording should continue.
func (w *Writer) DrainFrom(src Source) error {
	var scratch [4096]int16
	for {
		n := src.Drain(scratch[:])
		if n == 0 {
			return nil
		}

		ints := make([]int, n)
		for i := 0; i < n; i++ {
			ints[i] = int(scratch[i])
		}

		buf := &audio.IntBuffer{
			Data:           ints,
			Format:         &audio.Format{NumChannels: 1, SampleRate: w.enc.SampleRate},
			SourceBitDepth: bitDepth,
		}
		if err := w.enc.Write(buf); err != nil {
			return err
		}

		if n < len(scratch) {
			return nil
		}
	}
}

// Close finalises the WAV header and closes the underlying file.
func (w *Writer) Close() error {
	if err := w.enc.Close(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
