package matching

import (
	"math/rand/v2"
	"sync"
)

// MaxJitter bounds the random adjustment applied to each score.
const MaxJitter = 3

// JitterSource yields score adjustments in [-MaxJitter, MaxJitter].
type JitterSource interface {
	Jitter() int
}

type randJitter struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandJitter returns a concurrency-safe uniform jitter source. A zero seed
// picks a random one.
func NewRandJitter(seed uint64) JitterSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randJitter{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (j *randJitter) Jitter() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.r.IntN(2*MaxJitter+1) - MaxJitter
}

// SequenceJitter replays a fixed sequence of adjustments, cycling when
// exhausted. Values outside the jitter range are clamped. An empty sequence
// always yields zero.
type SequenceJitter struct {
	mu     sync.Mutex
	values []int
	next   int
}

// NewSequenceJitter builds a SequenceJitter over values.
func NewSequenceJitter(values ...int) *SequenceJitter {
	return &SequenceJitter{values: append([]int(nil), values...)}
}

func (s *SequenceJitter) Jitter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return clamp(v, -MaxJitter, MaxJitter)
}
