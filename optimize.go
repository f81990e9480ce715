package main

import (
	"math/rand"
	"slices"
	"sort"
)

// The parameter search treats the whole pipeline — ground state, circuit
// run, measurement, cost — as a black-box function of the free u3 angles
// and minimizes it with a derivative-free Nelder-Mead simplex.

// Clone returns a deep copy of the circuit, including u3 angle sets.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{NumQubits: c.NumQubits, Gates: slices.Clone(c.Gates)}
	for i := range out.Gates {
		out.Gates[i].Controls = slices.Clone(out.Gates[i].Controls)
		if p := out.Gates[i].Params; p != nil {
			cp := *p
			out.Gates[i].Params = &cp
		}
	}
	return out
}

// FreeAngles packs the (theta, phi) pair of every u3 gate, in circuit
// order. Lambda is left fixed; the search varies two angles per gate.
func (c *Circuit) FreeAngles() []float64 {
	var x []float64
	for _, g := range c.Gates {
		if g.Kind == GateU3 && g.Params != nil {
			x = append(x, g.Params.Theta, g.Params.Phi)
		}
	}
	return x
}

// BindAngles writes a FreeAngles-shaped vector back into the circuit's u3
// gates. Extra or missing entries are ignored.
func (c *Circuit) BindAngles(x []float64) {
	i := 0
	for _, g := range c.Gates {
		if g.Kind == GateU3 && g.Params != nil && i+2 <= len(x) {
			g.Params.Theta = x[i]
			g.Params.Phi = x[i+1]
			i += 2
		}
	}
}

// Objective builds the function the optimizer minimizes: bind the angle
// vector, run the circuit from the ground state, measure, and sum the
// counts of the unwanted labels. The circuit is cloned so iterations never
// alias each other's parameters.
func Objective(c *Circuit, unwanted []string, shots int, rng *rand.Rand) func(x []float64) float64 {
	return func(x []float64) float64 {
		trial := c.Clone()
		trial.BindAngles(x)
		final, err := RunCircuit(trial)
		if err != nil {
			return float64(shots + 1)
		}
		counts, err := final.MeasureWith(shots, rng)
		if err != nil {
			return float64(shots + 1)
		}
		return float64(Cost(counts, unwanted))
	}
}

// Minimize searches for angles that drive the circuit's unwanted-outcome
// cost to zero and returns the optimized circuit, the best angle vector,
// and its cost. Circuits with no u3 gates are returned unchanged.
func Minimize(c *Circuit, unwanted []string, shots, maxIter int, rng *rand.Rand) (*Circuit, []float64, float64) {
	start := c.FreeAngles()
	if len(start) == 0 {
		fn := Objective(c, unwanted, shots, rng)
		return c.Clone(), nil, fn(nil)
	}
	best, bestCost := NelderMead(Objective(c, unwanted, shots, rng), start, maxIter)
	out := c.Clone()
	out.BindAngles(best)
	return out, best, bestCost
}

// Nelder-Mead coefficients: reflection, expansion, contraction, shrink.
const (
	nmAlpha = 1.0
	nmGamma = 2.0
	nmRho   = 0.5
	nmSigma = 0.5
)

// NelderMead minimizes fn from the given start point using the downhill
// simplex method. It is derivative-free, which matters here because the
// sampled cost surface is a noisy step function of the angles.
func NelderMead(fn func([]float64) float64, start []float64, maxIter int) ([]float64, float64) {
	dim := len(start)

	points := make([][]float64, dim+1)
	vals := make([]float64, dim+1)
	points[0] = slices.Clone(start)
	for i := 1; i <= dim; i++ {
		p := slices.Clone(start)
		if p[i-1] != 0 {
			p[i-1] *= 1.05
		} else {
			p[i-1] = 0.25
		}
		points[i] = p
	}
	for i := range points {
		vals[i] = fn(points[i])
	}

	for iter := 0; iter < maxIter; iter++ {
		sort.Sort(&simplexOrder{points, vals})
		if vals[0] == 0 {
			break
		}

		// Centroid of all but the worst vertex.
		centroid := make([]float64, dim)
		for _, p := range points[:dim] {
			for j, v := range p {
				centroid[j] += v
			}
		}
		for j := range centroid {
			centroid[j] /= float64(dim)
		}

		worst := points[dim]
		reflected := affine(centroid, worst, -nmAlpha)
		fr := fn(reflected)

		switch {
		case fr < vals[0]:
			expanded := affine(centroid, worst, -nmGamma)
			if fe := fn(expanded); fe < fr {
				points[dim], vals[dim] = expanded, fe
			} else {
				points[dim], vals[dim] = reflected, fr
			}
		case fr < vals[dim-1]:
			points[dim], vals[dim] = reflected, fr
		default:
			contracted := affine(centroid, worst, nmRho)
			if fc := fn(contracted); fc < vals[dim] {
				points[dim], vals[dim] = contracted, fc
			} else {
				// Shrink every vertex toward the best.
				for i := 1; i <= dim; i++ {
					points[i] = affine(points[0], points[i], nmSigma)
					vals[i] = fn(points[i])
				}
			}
		}
	}

	sort.Sort(&simplexOrder{points, vals})
	return points[0], vals[0]
}

// affine returns base + t*(point - base).
func affine(base, point []float64, t float64) []float64 {
	out := make([]float64, len(base))
	for j := range base {
		out[j] = base[j] + t*(point[j]-base[j])
	}
	return out
}

// simplexOrder sorts simplex vertices by objective value.
type simplexOrder struct {
	points [][]float64
	vals   []float64
}

func (s *simplexOrder) Len() int           { return len(s.vals) }
func (s *simplexOrder) Less(i, j int) bool { return s.vals[i] < s.vals[j] }
func (s *simplexOrder) Swap(i, j int) {
	s.points[i], s.points[j] = s.points[j], s.points[i]
	s.vals[i], s.vals[j] = s.vals[j], s.vals[i]
}
