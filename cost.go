package main

// Cost sums the shots observed for the given basis labels. Labels never
// drawn contribute zero. This is the sole quantity the parameter search
// minimizes: driving the unwanted outcomes to zero shots.
func Cost(counts Counts, labels []string) int {
	total := 0
	for _, label := range labels {
		total += counts[label]
	}
	return total
}
