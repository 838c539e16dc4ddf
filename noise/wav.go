package noise

import (
	"fmt"
	"os"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// DefaultSampleRate is the rate used when exporting sample buffers.
const DefaultSampleRate = 44100

// WAVSource reads the first channel of a WAV file.
type WAVSource struct {
	path string
}

// NewWAVSource creates a source reading from path.
func NewWAVSource(path string) *WAVSource {
	return &WAVSource{path: path}
}

// Samples decodes up to n frames; n <= 0 reads the whole file.
func (s *WAVSource) Samples(n int) ([]float32, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening wav: %w", err)
	}
	defer f.Close()

	stream, _, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding wav %s: %w", s.path, err)
	}
	defer stream.Close()

	if n <= 0 {
		n = stream.Len()
	}
	return drain(stream, n)
}

// WriteWAV writes samples in [-1, 1] as a mono 16-bit WAV file.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav: %w", err)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, &sliceStreamer{samples: samples}, format); err != nil {
		f.Close()
		return fmt.Errorf("encoding wav %s: %w", path, err)
	}
	return f.Close()
}

// sliceStreamer plays a mono buffer on both channels.
type sliceStreamer struct {
	samples []float32
	pos     int
}

func (s *sliceStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := copy2(out, s.samples[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

func copy2(out [][2]float64, in []float32) int {
	n := min(len(out), len(in))
	for i := 0; i < n; i++ {
		v := float64(in[i])
		out[i] = [2]float64{v, v}
	}
	return n
}
