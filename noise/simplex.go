package noise

import (
	"fmt"
	"math"

	"github.com/ojrac/opensimplex-go"
)

// SimplexSource walks a closed loop through 2D OpenSimplex noise. The loop
// makes the buffer seamless: the last sample flows into the first, so
// cursors that wrap around never see a jump.
type SimplexSource struct {
	noise     opensimplex.Noise32
	frequency float32
}

// NewSimplexSource creates a source; frequency is the distance travelled
// through the noise field per sample.
func NewSimplexSource(seed int64, frequency float32) *SimplexSource {
	if frequency <= 0 {
		frequency = 0.05
	}
	return &SimplexSource{
		noise:     opensimplex.New32(seed),
		frequency: frequency,
	}
}

// Samples returns n samples in roughly [-1, 1].
func (s *SimplexSource) Samples(n int) ([]float32, error) {
	if n <= 0 {
		return nil, fmt.Errorf("simplex: sample count must be positive, got %d", n)
	}

	// Circumference n*frequency keeps the step length equal to frequency.
	radius := float64(n) * float64(s.frequency) / (2 * math.Pi)
	out := make([]float32, n)
	for i := range out {
		theta := 2 * math.Pi * float64(i) / float64(n)
		x := float32(radius * math.Cos(theta))
		y := float32(radius * math.Sin(theta))
		out[i] = s.noise.Eval2(x, y)
	}
	return out, nil
}
