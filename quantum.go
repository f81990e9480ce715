package main

import (
	"fmt"
	"math/cmplx"
)

// StateVector holds the complex amplitudes of an n-qubit register over the
// computational basis. Qubit 0 is the most significant bit of a basis
// index (big-endian), matching the operator builder's Kronecker order.
type StateVector struct {
	Amplitudes []Complex
	NumQubits  int
}

// NewStateVector returns the ground state |0...0>: amplitude 1 at index 0.
func NewStateVector(numQubits int) *StateVector {
	amps := make([]Complex, 1<<numQubits)
	amps[0] = 1
	return &StateVector{Amplitudes: amps, NumQubits: numQubits}
}

// Clone returns a deep copy of the state.
func (s *StateVector) Clone() *StateVector {
	amps := make([]Complex, len(s.Amplitudes))
	copy(amps, s.Amplitudes)
	return &StateVector{Amplitudes: amps, NumQubits: s.NumQubits}
}

// checkDimension verifies the amplitude length against the qubit count
// before any operator application.
func (s *StateVector) checkDimension() error {
	if len(s.Amplitudes) != 1<<s.NumQubits {
		return fmt.Errorf("%w: %d amplitudes for %d qubits",
			ErrDimensionMismatch, len(s.Amplitudes), s.NumQubits)
	}
	return nil
}

// ApplyGate returns the state evolved through one gate descriptor: the
// gate's full-register operator is built fresh and the new state is
// state · operator (row-vector convention). The receiver is not modified.
// The gate is checked against the state's width, so a descriptor addressing
// qubits outside the register fails here even without a prior Validate.
func (s *StateVector) ApplyGate(g Gate) (*StateVector, error) {
	if err := s.checkDimension(); err != nil {
		return nil, err
	}
	if err := validateGate(g, s.NumQubits); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCircuit, err)
	}
	base, err := baseUnitary(g)
	if err != nil {
		return nil, err
	}
	op := BuildOperator(s.NumQubits, base, g.Target, g.Controls)
	return &StateVector{
		Amplitudes: applyRow(s.Amplitudes, op),
		NumQubits:  s.NumQubits,
	}, nil
}

// Run validates the circuit, then folds ApplyGate over its gates in order
// starting from the receiver. Validation failures abort before any gate is
// applied. The state and circuit must agree on register width: validation
// checks gates against the circuit's width while operators are built with
// the state's, so a mismatch would silently turn out-of-range gates into
// identities.
func (s *StateVector) Run(c *Circuit) (*StateVector, error) {
	if s.NumQubits != c.NumQubits {
		return nil, fmt.Errorf("%w: state of %d qubits for a %d-qubit circuit",
			ErrDimensionMismatch, s.NumQubits, c.NumQubits)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	state := s
	for _, g := range c.Gates {
		next, err := state.ApplyGate(g)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return state, nil
}

// RunCircuit runs the circuit from the ground state.
func RunCircuit(c *Circuit) (*StateVector, error) {
	return NewStateVector(c.NumQubits).Run(c)
}

// QubitProbability is the marginal outcome distribution of one qubit.
type QubitProbability struct {
	Prob0 float64
	Prob1 float64
}

// QubitProbabilities returns the marginal |0>/|1> probability per qubit.
func (s *StateVector) QubitProbabilities() []QubitProbability {
	probs := make([]QubitProbability, s.NumQubits)
	for i, amp := range s.Amplitudes {
		p := real(amp * cmplx.Conj(amp))
		for q := 0; q < s.NumQubits; q++ {
			if i&(1<<(s.NumQubits-1-q)) != 0 {
				probs[q].Prob1 += p
			} else {
				probs[q].Prob0 += p
			}
		}
	}
	return probs
}
