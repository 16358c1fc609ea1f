package papertrade

import (
	"math/rand/v2"
	"time"
)

// PercentSource yields price movements as fractions of the maximum move, in [-1, 1].
type PercentSource interface {
	Next() float64
}

// randomSource draws uniform movements from a pseudo random generator.
type randomSource struct {
	r *rand.Rand
}

// NewRandomSource returns a uniform source in [-1, 1]. A zero seed uses the current time.
func NewRandomSource(seed uint64) PercentSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &randomSource{r: rand.New(rand.NewPCG(seed, seed>>1|1))}
}

func (s *randomSource) Next() float64 { return s.r.Float64()*2 - 1 }

// Sequence is a deterministic PercentSource cycling through its values.
// Values outside [-1, 1] are clamped. An empty Sequence always yields 0.
type Sequence struct {
	Values []float64
	i      int
}

// NewSequence returns a source cycling through 'values'.
func NewSequence(values ...float64) *Sequence { return &Sequence{Values: values} }

func (s *Sequence) Next() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.i%len(s.Values)]
	s.i++
	return min(max(v, -1), 1)
}
