// Package history keeps a bounded, self-compressing time series of samples.
package history

// DefaultCapacity is the sample budget used by the town simulation.
const DefaultCapacity = 128

// Samples is an ordered series of values that never grows past its capacity.
// When an append would overflow, the existing series is halved in place by
// averaging neighbouring pairs, so recent values keep full resolution and
// older values are progressively coarsened.
type Samples struct {
	values      []float64
	capacity    int
	compactions int
}

// New returns an empty series holding at most capacity values. Capacities
// below two are raised to two so a compression always frees a slot.
func New(capacity int) *Samples {
	if capacity < 2 {
		capacity = 2
	}
	return &Samples{values: make([]float64, 0, capacity), capacity: capacity}
}

// Append adds v to the end of the series, compressing first if it is full.
func (s *Samples) Append(v float64) {
	if len(s.values) == s.capacity {
		s.compress()
	}
	s.values = append(s.values, v)
}

// compress replaces the series with ⌊len/2⌋ pairwise averages. With an odd
// length the final unpaired value is dropped.
func (s *Samples) compress() {
	half := len(s.values) / 2
	for i := 0; i < half; i++ {
		s.values[i] = (s.values[2*i] + s.values[2*i+1]) / 2
	}
	s.values = s.values[:half]
	s.compactions++
}

// Values exposes the series in chronological order. The slice is only valid
// until the next Append.
func (s *Samples) Values() []float64 { return s.values }

// Len returns the number of stored samples.
func (s *Samples) Len() int { return len(s.values) }

// Cap returns the capacity of the series.
func (s *Samples) Cap() int { return s.capacity }

// Compactions returns how many times the series has been halved.
func (s *Samples) Compactions() int { return s.compactions }

// Last returns the most recent sample and whether one exists.
func (s *Samples) Last() (float64, bool) {
	if len(s.values) == 0 {
		return 0, false
	}
	return s.values[len(s.values)-1], true
}
