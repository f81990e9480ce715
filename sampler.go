package main

import (
	"fmt"
	"math/cmplx"
	"math/rand"
)

// Counts maps n-bit basis labels to the number of shots that produced
// them. Only labels actually drawn appear as keys.
type Counts map[string]int

// Distribution returns the basis labels with non-zero probability and
// their |amplitude|^2 weights, in basis-index order. Only exactly-zero
// amplitudes are omitted; a tiny amplitude still appears. Labels are
// zero-padded big-endian bit strings, so q[0] is the leftmost character.
func (s *StateVector) Distribution() ([]string, []float64) {
	var labels []string
	var probs []float64
	for i, amp := range s.Amplitudes {
		p := real(amp * cmplx.Conj(amp))
		if p == 0 {
			continue
		}
		labels = append(labels, fmt.Sprintf("%0*b", s.NumQubits, i))
		probs = append(probs, p)
	}
	return labels, probs
}

// Sample draws shots independent weighted picks with replacement from the
// given distribution. A label with non-zero probability may still be
// absent from the result; that is sampling variance, not an error.
func Sample(labels []string, probs []float64, shots int, rng *rand.Rand) (Counts, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("%w: shot count %d must be positive", ErrConfiguration, shots)
	}
	total := 0.0
	for _, p := range probs {
		total += p
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w: distribution has no weight", ErrConfiguration)
	}

	counts := make(Counts)
	for range shots {
		r := rng.Float64() * total
		acc := 0.0
		picked := labels[len(labels)-1]
		for i, p := range probs {
			acc += p
			if r < acc {
				picked = labels[i]
				break
			}
		}
		counts[picked]++
	}
	return counts, nil
}

// defaultRNG is the process-wide source used when no generator is
// injected. Tests needing reproducibility pass their own seeded *rand.Rand
// to Sample or MeasureWith.
var defaultRNG = rand.New(rand.NewSource(rand.Int63()))

// Measure samples shot outcomes from the state's distribution using the
// process-wide random source.
func (s *StateVector) Measure(shots int) (Counts, error) {
	return s.MeasureWith(shots, defaultRNG)
}

// MeasureWith is Measure with an injectable generator.
func (s *StateVector) MeasureWith(shots int, rng *rand.Rand) (Counts, error) {
	labels, probs := s.Distribution()
	return Sample(labels, probs, shots, rng)
}

// Shots reports the total number of shots recorded in counts.
func (c Counts) Shots() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}
