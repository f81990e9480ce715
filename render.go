package main

import (
	"fmt"
	"sort"
	"strings"
)

// ──────────────────────────── Rendering helpers ────────────────────────────

// padCenter centres a string within the given width.
func padCenter(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	total := width - len(s)
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
}

// gateDisplayName returns a short display name for a gate.
func gateDisplayName(g *Gate) string {
	switch g.Kind {
	case GateIdentity:
		return "I"
	case GatePauliX:
		return "X"
	case GateHadamard:
		return "H"
	case GateU3:
		return "U3"
	}
	return "?"
}

// cellInfo describes what occupies a single cell in the circuit grid.
type cellInfo struct {
	gate        *Gate
	isControl   bool
	isTarget    bool
	vertAbove   bool
	vertBelow   bool
	passThrough bool
}

// getCellInfo returns rendering information for the cell at (step, qubit).
func (m Model) getCellInfo(step, qubit int) cellInfo {
	var info cellInfo
	if step < 0 || step >= len(m.circuit.Gates) {
		return info
	}
	g := &m.circuit.Gates[step]

	if g.references(qubit) {
		info.gate = g
		info.isControl = slicesContains(g.Controls, qubit)
		info.isTarget = g.Target == qubit
	}

	if len(g.Controls) > 0 {
		minQ, maxQ := g.Target, g.Target
		for _, ctrl := range g.Controls {
			minQ = min(minQ, ctrl)
			maxQ = max(maxQ, ctrl)
		}
		if qubit >= minQ && qubit <= maxQ {
			info.vertAbove = qubit > minQ
			info.vertBelow = qubit < maxQ
			if info.gate == nil {
				info.passThrough = true
			}
		}
	}

	return info
}

type cellHighlight int

const (
	hlNone cellHighlight = iota
	hlCursor
	hlTargetSelect
)

// renderCell returns 3 lines (top, mid, bot) for a single cell, each
// exactly cellW visual characters wide.
func renderCell(info cellInfo, hl cellHighlight) (top, mid, bot string) {
	emptyRow := strings.Repeat(" ", cellW)
	halfW := cellW / 2
	vertRow := strings.Repeat(" ", halfW) + "│" + strings.Repeat(" ", cellW-halfW-1)
	dashL := (cellW - 1) / 2
	dashR := cellW - dashL - 1

	// symbol cells: control dots and X targets sit directly on the wire
	symbolFor := func() (string, bool) {
		if info.isControl {
			return "●", true
		}
		if info.isTarget && info.gate != nil && len(info.gate.Controls) > 0 && info.gate.Kind == GatePauliX {
			return "⊕", true
		}
		return "", false
	}

	if hl == hlCursor || hl == hlTargetSelect {
		bdr := cursorBoxStyle
		if hl == hlTargetSelect {
			bdr = targetSelectStyle
		}
		innerW := cellW - 2
		inDashL := (innerW - 1) / 2
		inDashR := innerW - inDashL - 1

		top = bdr.Render("╔" + strings.Repeat("═", innerW) + "╗")
		bot = bdr.Render("╚" + strings.Repeat("═", innerW) + "╝")

		switch {
		case info.gate != nil:
			if sym, ok := symbolFor(); ok {
				mid = bdr.Render("║") + strings.Repeat("─", inDashL) + gateStyle.Render(sym) + strings.Repeat("─", inDashR) + bdr.Render("║")
			} else {
				name := padCenter(gateDisplayName(info.gate), gateNameW)
				mid = bdr.Render("║") + "─┤" + gateStyle.Render(name) + "├─" + bdr.Render("║")
			}
		case info.passThrough:
			mid = bdr.Render("║") + strings.Repeat("─", inDashL) + "┼" + strings.Repeat("─", inDashR) + bdr.Render("║")
		default:
			mid = bdr.Render("║") + strings.Repeat("─", innerW) + bdr.Render("║")
		}
		return
	}

	switch {
	case info.gate != nil:
		if sym, ok := symbolFor(); ok {
			top = emptyRow
			if info.vertAbove {
				top = vertRow
			}
			mid = strings.Repeat("─", dashL) + gateStyle.Render(sym) + strings.Repeat("─", dashR)
			bot = emptyRow
			if info.vertBelow {
				bot = vertRow
			}
		} else {
			margin := (cellW - gateBoxW) / 2
			rightMargin := cellW - margin - gateBoxW
			name := padCenter(gateDisplayName(info.gate), gateNameW)
			top = strings.Repeat(" ", margin) + gateStyle.Render("┌"+strings.Repeat("─", gateNameW)+"┐") + strings.Repeat(" ", rightMargin)
			mid = strings.Repeat("─", margin) + gateStyle.Render("┤"+name+"├") + strings.Repeat("─", rightMargin)
			bot = strings.Repeat(" ", margin) + gateStyle.Render("└"+strings.Repeat("─", gateNameW)+"┘") + strings.Repeat(" ", rightMargin)
			if info.vertAbove {
				top = vertRow
			}
			if info.vertBelow {
				bot = vertRow
			}
		}

	case info.passThrough:
		top = vertRow
		mid = strings.Repeat("─", dashL) + "┼" + strings.Repeat("─", dashR)
		bot = vertRow

	default:
		top = emptyRow
		if info.vertAbove {
			top = vertRow
		}
		mid = strings.Repeat("─", cellW)
		bot = emptyRow
		if info.vertBelow {
			bot = vertRow
		}
	}

	return
}

// ──────────────────────────── Panel rendering ────────────────────────────

// renderCircuitPanel renders the circuit grid panel.
func (m Model) renderCircuitPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Quantum Circuit"))
	sb.WriteString("\n\n")

	availWidth := width - labelVisualW - 4
	maxSteps := max(availWidth/cellW, 1)

	startStep := 0
	if m.cursorStep >= maxSteps {
		startStep = m.cursorStep - maxSteps + 1
	}
	if startStep > 0 {
		fmt.Fprintf(&sb, "  ◀ showing steps %d–%d\n", startStep, startStep+maxSteps-1)
	}

	// Step number header
	header := strings.Repeat(" ", labelVisualW)
	for step := startStep; step < startStep+maxSteps; step++ {
		header += dimStyle.Render(padCenter(fmt.Sprintf("%d", step), cellW))
	}
	sb.WriteString(header + "\n")

	for qubit := range m.circuit.NumQubits {
		topLine := strings.Repeat(" ", labelVisualW)
		label := fmt.Sprintf("q[%d]", qubit)
		midLine := qubitLabelStyle.Render(fmt.Sprintf("%-5s", label)) + "──"
		botLine := strings.Repeat(" ", labelVisualW)

		for step := startStep; step < startStep+maxSteps; step++ {
			info := m.getCellInfo(step, qubit)

			hl := hlNone
			if step == m.cursorStep && qubit == m.cursorQubit &&
				(m.focus == focusCircuit || m.focus == focusMenu || m.focus == focusSelectTarget || m.focus == focusSelectControls) {
				hl = hlCursor
			} else if step == m.cursorStep && qubit == m.targetQubit &&
				(m.focus == focusSelectTarget || m.focus == focusSelectControls) {
				hl = hlTargetSelect
			}

			top, mid, bot := renderCell(info, hl)
			topLine += top
			midLine += mid
			botLine += bot
		}

		sb.WriteString(topLine + "\n")
		sb.WriteString(midLine + "\n")
		sb.WriteString(botLine + "\n")
	}

	// Status line
	switch m.focus {
	case focusSelectTarget:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s  Select target qubit: %s",
			activeGateStyle.Render(m.pendingItem.name),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	case focusSelectControls:
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "  %s  Select control qubit: %s",
			activeGateStyle.Render(m.pendingItem.name),
			targetSelectStyle.Render(fmt.Sprintf("q[%d]", m.targetQubit)))
		sb.WriteString(dimStyle.Render("   ↑↓ Move  Enter Confirm  Esc Cancel"))
	default:
		fmt.Fprintf(&sb, "\n  Step %d, Qubit %d  │  %d shots", m.cursorStep, m.cursorQubit, m.shots)
		if m.statusMsg != "" {
			fmt.Fprintf(&sb, "  │  %s", activeGateStyle.Render(m.statusMsg))
		}
	}

	return circuitStyle.Width(width).Height(height).Render(sb.String())
}

// renderResultsPanel renders the measurement histogram and cost readout.
func (m Model) renderResultsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Results"))
	sb.WriteString("\n\n")

	if m.counts == nil {
		sb.WriteString(dimStyle.Render("  Press r to run the circuit"))
		return resultsStyle.Width(width).Height(height).Render(sb.String())
	}

	labels := make([]string, 0, len(m.counts))
	for label := range m.counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	shots := m.counts.Shots()
	for _, label := range labels {
		n := m.counts[label]
		barLen := 0
		if shots > 0 {
			barLen = n * histBarW / shots
		}
		fmt.Fprintf(&sb, "  %s %s %s\n",
			histLabelStyle.Render("|"+label+"⟩"),
			histBarStyle.Render(strings.Repeat("█", barLen)+strings.Repeat("░", histBarW-barLen)),
			dimStyle.Render(fmt.Sprintf("%4d  (%.1f%%)", n, 100*float64(n)/float64(shots))))
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "  Cost(%s) = %s",
		strings.Join(m.unwanted, ","),
		costStyle.Render(fmt.Sprintf("%d", m.lastCost)))

	return resultsStyle.Width(width).Height(height).Render(sb.String())
}

// renderQASMPanel renders the QASM editor panel.
func (m Model) renderQASMPanel(width, height int) string {
	var sb strings.Builder

	title := "QASM Editor"
	if m.focus == focusQASM {
		title += " [ACTIVE]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.qasmEditor.View())

	return qasmStyle.Width(width).Height(height).Render(sb.String())
}

// renderControlsPanel renders the bottom help/controls bar.
func (m Model) renderControlsPanel(width, height int) string {
	var sb strings.Builder

	sb.WriteString(activeGateStyle.Render("Navigate: "))
	sb.WriteString("↑↓/jk Qubit  ←→/hl Step  +/- Qubits  a Add gate  Bksp Delete\n")

	sb.WriteString(activeGateStyle.Render("Simulate: "))
	sb.WriteString("r Run  o Optimize  [/] Shots  Tab Focus  ^R Reset  ^S Save  q Quit")

	return controlsStyle.Width(width).Height(height).Render(sb.String())
}

// ──────────────────────────── Overlay helpers ────────────────────────────

// overlayAt composites the overlay string on top of the background at
// position (x, y), tracking visible columns across ANSI escape sequences.
func overlayAt(bg, overlay string, x, y int) string {
	bgLines := strings.Split(bg, "\n")
	ovLines := strings.Split(overlay, "\n")

	for i, ovLine := range ovLines {
		bgIdx := y + i
		if bgIdx < 0 || bgIdx >= len(bgLines) {
			continue
		}
		bgLines[bgIdx] = spliceLineAt(bgLines[bgIdx], ovLine, x)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLineAt replaces visible columns starting at position x in bgLine
// with overlay content, preserving ANSI escapes in the untouched parts.
func spliceLineAt(bgLine, overlay string, x int) string {
	runes := []rune(bgLine)
	ovWidth := visibleLen(overlay)

	var prefix strings.Builder
	var suffix strings.Builder

	col := 0
	i := 0
	inEsc := false

	// Collect prefix: everything up to visible column x
	for i < len(runes) && col < x {
		if runes[i] == '\x1b' {
			inEsc = true
			for i < len(runes) {
				prefix.WriteRune(runes[i])
				if inEsc && runes[i] != '\x1b' && runes[i] != '[' && ((runes[i] >= 'A' && runes[i] <= 'Z') || (runes[i] >= 'a' && runes[i] <= 'z')) {
					inEsc = false
					i++
					break
				}
				i++
			}
		} else {
			prefix.WriteRune(runes[i])
			col++
			i++
		}
	}

	// Pad prefix if bg line is shorter than x
	for col < x {
		prefix.WriteRune(' ')
		col++
	}

	// Skip over ovWidth visible columns in the background
	skipped := 0
	for i < len(runes) && skipped < ovWidth {
		if runes[i] == '\x1b' {
			for i < len(runes) {
				i++
				if i > 0 && runes[i-1] != '\x1b' && runes[i-1] != '[' && ((runes[i-1] >= 'A' && runes[i-1] <= 'Z') || (runes[i-1] >= 'a' && runes[i-1] <= 'z')) {
					break
				}
			}
		} else {
			skipped++
			i++
		}
	}

	// Collect suffix: rest of the background line
	for i < len(runes) {
		suffix.WriteRune(runes[i])
		i++
	}

	return prefix.String() + overlay + suffix.String()
}

// visibleLen returns the number of visible (non-ANSI-escape) characters.
func visibleLen(s string) int {
	n := 0
	inEsc := false
	for _, r := range s {
		if r == '\x1b' {
			inEsc = true
			continue
		}
		if inEsc {
			if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
				inEsc = false
			}
			continue
		}
		n++
	}
	return n
}
