package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	var (
		qasmPath    = flag.String("qasm", "", "load a circuit from a QASM file")
		shots       = flag.Int("shots", 1000, "measurement shots per run")
		seed        = flag.Int64("seed", 0, "random seed (0 uses a process-wide source)")
		headless    = flag.Bool("headless", false, "run once and print counts instead of the TUI")
		optimize    = flag.Bool("optimize", false, "with -headless, minimize the cost before the final run")
		unwantedCSV = flag.String("unwanted", "", "comma-separated basis labels whose counts form the cost (default: all but the all-0 and all-1 labels)")
		legacy      = flag.Bool("legacy-trunc", false, "truncate u3 sine/cosine terms to 4 decimals (legacy parity mode)")
	)
	flag.Parse()

	truncateU3 = *legacy

	rng := defaultRNG
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	circuit := demoCircuit()
	if *qasmPath != "" {
		data, err := os.ReadFile(*qasmPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", *qasmPath, err)
			os.Exit(1)
		}
		circuit = &Circuit{}
		if err := circuit.ParseQASM(string(data)); err != nil {
			fmt.Fprintf(os.Stderr, "parse %s: %v\n", *qasmPath, err)
			os.Exit(1)
		}
	}

	unwanted := unwantedLabels(circuit.NumQubits)
	if *unwantedCSV != "" {
		unwanted = splitLabels(*unwantedCSV)
	}

	if *headless {
		if err := runHeadless(circuit, unwanted, *shots, *optimize, rng); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(initialModel(circuit, *shots, rng, unwanted), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// demoCircuit prepares an entangling pair: a u3 rotation feeding a CNOT,
// the stock target for the angle search.
func demoCircuit() *Circuit {
	c := &Circuit{NumQubits: 2}
	c.AddU3(0, 10.99433535, 7.8527427, 0)
	c.AddGate(GatePauliX, 1, 0)
	return c
}

// splitLabels parses a comma-separated label list, trimming whitespace so
// "01, 10" matches the count keys "01" and "10".
func splitLabels(csv string) []string {
	var labels []string
	for _, label := range strings.Split(csv, ",") {
		if label = strings.TrimSpace(label); label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}

// unwantedLabels returns every n-bit label except all-zeros and all-ones:
// for an entangling circuit these are the outcomes the search suppresses.
func unwantedLabels(n int) []string {
	var labels []string
	for i := 1; i < (1<<n)-1; i++ {
		labels = append(labels, fmt.Sprintf("%0*b", n, i))
	}
	return labels
}

// runHeadless executes the pipeline once and prints counts and cost.
func runHeadless(circuit *Circuit, unwanted []string, shots int, optimize bool, rng *rand.Rand) error {
	if optimize {
		optimized, angles, cost := Minimize(circuit, unwanted, shots, 80, rng)
		circuit = optimized
		fmt.Printf("optimized angles %v (cost %g)\n", angles, cost)
	}

	final, err := RunCircuit(circuit)
	if err != nil {
		return err
	}
	counts, err := final.MeasureWith(shots, rng)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Printf("%s %d\n", label, counts[label])
	}
	fmt.Printf("cost(%s) = %d\n", strings.Join(unwanted, ","), Cost(counts, unwanted))
	return nil
}
