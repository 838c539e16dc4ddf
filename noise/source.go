// Package noise produces the sample buffers that drive grass wind and
// airborne particle motion.
//
// A Source yields raw samples in any range; Normalize01 maps them onto
// [0, 1] and Quantize packs them into the 8-bit form the wind kernel reads.
package noise

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/meadow/config"
)

// Source kinds accepted by FromConfig.
const (
	KindSimplex = "simplex"
	KindWAV     = "wav"
	KindWhite   = "white"
)

// ErrNoSamples is returned when a source produces an empty buffer.
var ErrNoSamples = errors.New("noise: source produced no samples")

// Source produces a buffer of raw noise samples.
type Source interface {
	// Samples returns up to n samples. Sources backed by a finite input
	// treat n <= 0 as "everything available".
	Samples(n int) ([]float32, error)
}

// FromConfig builds the source selected by cfg.Kind.
func FromConfig(cfg config.NoiseConfig) (Source, error) {
	switch cfg.Kind {
	case KindSimplex:
		return NewSimplexSource(cfg.Seed, float32(cfg.Frequency)), nil
	case KindWAV:
		return NewWAVSource(cfg.Path), nil
	case KindWhite:
		return NewStreamerSource(NewWhiteNoise(cfg.Seed)), nil
	default:
		return nil, fmt.Errorf("noise: unknown source kind %q", cfg.Kind)
	}
}

// Load pulls cfg.NumSamples samples from the configured source and
// normalizes them to [0, 1].
func Load(cfg config.NoiseConfig) ([]float32, error) {
	src, err := FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	samples, err := src.Samples(cfg.NumSamples)
	if err != nil {
		return nil, fmt.Errorf("reading %s noise: %w", cfg.Kind, err)
	}
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	Normalize01(samples)
	return samples, nil
}
