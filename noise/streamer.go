package noise

import (
	"fmt"
	"math/rand"

	"github.com/gopxl/beep"
)

const streamChunk = 512

// StreamerSource drains the left channel of any beep.Streamer.
type StreamerSource struct {
	stream beep.Streamer
}

// NewStreamerSource wraps s.
func NewStreamerSource(s beep.Streamer) *StreamerSource {
	return &StreamerSource{stream: s}
}

// Samples reads n frames, or fewer if the stream ends first.
func (s *StreamerSource) Samples(n int) ([]float32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("streamer: sample count must be positive, got %d", n)
	}
	return drain(s.stream, n)
}

func drain(s beep.Streamer, n int) ([]float32, error) {
	out := make([]float32, 0, n)
	buf := make([][2]float64, streamChunk)
	for len(out) < n {
		want := min(streamChunk, n-len(out))
		got, ok := s.Stream(buf[:want])
		for i := 0; i < got; i++ {
			out = append(out, float32(buf[i][0]))
		}
		if !ok {
			break
		}
	}
	if err := s.Err(); err != nil {
		return out, err
	}
	return out, nil
}

// WhiteNoise is an endless seeded stream of uniform samples in [-1, 1).
type WhiteNoise struct {
	rng *rand.Rand
}

// NewWhiteNoise creates a deterministic white noise streamer.
func NewWhiteNoise(seed int64) *WhiteNoise {
	return &WhiteNoise{rng: rand.New(rand.NewSource(seed))}
}

func (w *WhiteNoise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := w.rng.Float64()*2 - 1
		samples[i] = [2]float64{v, v}
	}
	return len(samples), true
}

func (w *WhiteNoise) Err() error { return nil }
