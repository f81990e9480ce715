package main

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Pre-compiled regexps for QASM parsing.
var (
	gateLineRegex = regexp.MustCompile(`^(\w+)\s*(?:\(\s*([^)]*)\s*\))?\s+(q\[\d+\](?:\s*,\s*q\[\d+\])*)\s*;?$`)
	qubitRefRegex = regexp.MustCompile(`q\[(\d+)\]`)
	qregRegex     = regexp.MustCompile(`qreg\s+(\w+)\[(\d+)\]`)
)

// Gate is one operation in a circuit: a base gate kind, the qubit it acts
// on directly, and any control qubits gating its application. Params is nil
// for the fixed kinds and required for u3.
type Gate struct {
	Kind     GateKind
	Target   int
	Controls []int
	Params   *U3Params
}

// Circuit holds an ordered sequence of gates over a fixed-width register.
// Gates apply in slice order; the slice index doubles as the timeline step.
type Circuit struct {
	NumQubits int
	Gates     []Gate
}

// AddGate appends a fixed-kind gate, with optional control qubits.
func (c *Circuit) AddGate(kind GateKind, target int, controls ...int) {
	c.Gates = append(c.Gates, Gate{
		Kind:     kind,
		Target:   target,
		Controls: slices.Clone(controls),
	})
}

// AddU3 appends a u3 gate with the three Euler angles, with optional
// control qubits.
func (c *Circuit) AddU3(target int, theta, phi, lambda float64, controls ...int) {
	c.Gates = append(c.Gates, Gate{
		Kind:     GateU3,
		Target:   target,
		Controls: slices.Clone(controls),
		Params:   &U3Params{Theta: theta, Phi: phi, Lambda: lambda},
	})
}

// InsertGate places g at the given step; steps past the end append.
func (c *Circuit) InsertGate(step int, g Gate) {
	if step >= len(c.Gates) {
		c.Gates = append(c.Gates, g)
		return
	}
	c.Gates = slices.Insert(c.Gates, step, g)
}

// RemoveGateAt removes the gate at the given step if it references qubit.
func (c *Circuit) RemoveGateAt(step, qubit int) {
	if step < 0 || step >= len(c.Gates) {
		return
	}
	if c.Gates[step].references(qubit) {
		c.Gates = slices.Delete(c.Gates, step, step+1)
	}
}

// RemoveGatesOnQubit removes every gate that references the given qubit.
func (c *Circuit) RemoveGatesOnQubit(qubit int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.references(qubit)
	})
}

// references reports whether the gate touches the given qubit.
func (g Gate) references(qubit int) bool {
	return g.Target == qubit || slices.Contains(g.Controls, qubit)
}

// GateAt returns the gate at the given step if it references qubit, or nil.
func (c *Circuit) GateAt(step, qubit int) *Gate {
	if step < 0 || step >= len(c.Gates) {
		return nil
	}
	if c.Gates[step].references(qubit) {
		return &c.Gates[step]
	}
	return nil
}

// Validate checks every gate of the circuit against the register width.
// All gates are evaluated independently and the circuit is valid only if
// each one passes; per-gate failures are joined into the returned error,
// wrapped as ErrInvalidCircuit.
func (c *Circuit) Validate() error {
	var errs []error
	for i, g := range c.Gates {
		if err := validateGate(g, c.NumQubits); err != nil {
			errs = append(errs, fmt.Errorf("gate %d (%s): %w", i, g.Kind, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCircuit, errors.Join(errs...))
	}
	return nil
}

// validateGate checks a single gate descriptor against register width n.
func validateGate(g Gate, n int) error {
	if g.Target < 0 || g.Target >= n {
		return fmt.Errorf("target q[%d] outside register of %d qubits", g.Target, n)
	}
	seen := make(map[int]bool, len(g.Controls))
	for _, ctrl := range g.Controls {
		if ctrl < 0 || ctrl >= n {
			return fmt.Errorf("control q[%d] outside register of %d qubits", ctrl, n)
		}
		if ctrl == g.Target {
			return fmt.Errorf("control q[%d] equals target", ctrl)
		}
		if seen[ctrl] {
			return fmt.Errorf("duplicate control q[%d]", ctrl)
		}
		seen[ctrl] = true
	}
	if g.Kind == GateU3 {
		if g.Params == nil {
			return fmt.Errorf("u3 gate missing theta/phi/lambda")
		}
		if !numericAngle(g.Params.Theta) || !numericAngle(g.Params.Phi) || !numericAngle(g.Params.Lambda) {
			return fmt.Errorf("u3 gate has non-numeric angle")
		}
	}
	return nil
}

// qasmName returns the gate's QASM mnemonic, prefixing one "c" per control.
func (g Gate) qasmName() string {
	return strings.Repeat("c", len(g.Controls)) + g.Kind.String()
}

// ToQASM generates QASM 2.0 output from the circuit. Controls are listed
// before the target, matching the cx/ccx argument order.
func (c *Circuit) ToQASM() string {
	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n\n", max(c.NumQubits, 1))

	for _, g := range c.Gates {
		sb.WriteString(g.qasmName())
		if g.Kind == GateU3 && g.Params != nil {
			fmt.Fprintf(&sb, "(%s, %s, %s)",
				formatParam(g.Params.Theta), formatParam(g.Params.Phi), formatParam(g.Params.Lambda))
		}
		sb.WriteString(" ")
		for _, ctrl := range g.Controls {
			fmt.Fprintf(&sb, "q[%d], ", ctrl)
		}
		fmt.Fprintf(&sb, "q[%d];\n", g.Target)
	}

	return sb.String()
}

// ParseQASM parses QASM text and rebuilds the circuit from it. Only the
// closed gate set is accepted: id, x, h, u3 and their controlled forms
// (one leading "c" per control, e.g. cx, ccx, cu3). Unknown gate lines are
// an error so silent drops cannot skew simulation results.
func (c *Circuit) ParseQASM(qasm string) error {
	c.Gates = nil

	for _, line := range strings.Split(qasm, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "OPENQASM") || strings.HasPrefix(line, "include") {
			continue
		}
		if strings.HasPrefix(line, "qreg") {
			if matches := qregRegex.FindStringSubmatch(line); len(matches) > 2 {
				n, _ := strconv.Atoi(matches[2])
				c.NumQubits = n
			}
			continue
		}
		if strings.HasPrefix(line, "creg") || strings.HasPrefix(line, "barrier") {
			continue
		}

		matches := gateLineRegex.FindStringSubmatch(line)
		if matches == nil {
			return fmt.Errorf("%w: unrecognized line %q", ErrInvalidCircuit, line)
		}
		name := strings.ToLower(matches[1])
		paramText := matches[2]
		qubits := parseQubitList(matches[3])

		// None of the base mnemonics start with "c", so every leading "c"
		// marks one control qubit.
		baseName := strings.TrimLeft(name, "c")
		numControls := len(name) - len(baseName)
		kind, ok := kindFromName(baseName)
		if !ok {
			return fmt.Errorf("%w: unsupported gate %q", ErrInvalidCircuit, matches[1])
		}
		if len(qubits) != numControls+1 {
			return fmt.Errorf("%w: gate %q wants %d qubits, got %d",
				ErrInvalidCircuit, matches[1], numControls+1, len(qubits))
		}

		g := Gate{
			Kind:     kind,
			Target:   qubits[len(qubits)-1],
			Controls: qubits[:len(qubits)-1],
		}
		if kind == GateU3 {
			angles, err := parseAngleList(paramText)
			if err != nil {
				return fmt.Errorf("%w: gate %q: %w", ErrInvalidCircuit, matches[1], err)
			}
			g.Params = angles
		}
		c.Gates = append(c.Gates, g)
	}

	return nil
}

// parseQubitList extracts the q[i] indices from a comma-separated list.
func parseQubitList(s string) []int {
	refs := qubitRefRegex.FindAllStringSubmatch(s, -1)
	qubits := make([]int, 0, len(refs))
	for _, ref := range refs {
		idx, _ := strconv.Atoi(ref[1])
		qubits = append(qubits, idx)
	}
	return qubits
}

// parseAngleList parses the "theta, phi, lambda" parameter text of a u3.
func parseAngleList(s string) (*U3Params, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return nil, fmt.Errorf("u3 wants 3 angles, got %d", len(parts))
	}
	vals := make([]float64, 3)
	for i, part := range parts {
		v, ok := parseParamExpr(strings.TrimSpace(part))
		if !ok {
			return nil, fmt.Errorf("bad angle %q", strings.TrimSpace(part))
		}
		vals[i] = v
	}
	return &U3Params{Theta: vals[0], Phi: vals[1], Lambda: vals[2]}, nil
}
