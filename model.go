package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// focus represents which panel/mode has keyboard input.
type focus int

const (
	focusCircuit focus = iota
	focusQASM
	focusMenu
	focusSelectTarget
	focusSelectControls
	focusInputParam
)

// Model represents the TUI application state.
type Model struct {
	circuit       *Circuit
	cursorQubit   int
	cursorStep    int
	width         int
	height        int
	qasmEditor    textarea.Model
	focus         focus
	lastQASM      string
	statusMsg     string // transient status message (e.g. run errors)

	// Menu state
	menuCat  int
	menuItem int

	// Placement state (for controlled gates)
	pendingItem   *menuItem
	targetQubit   int
	paramInput    string
	controlQubits []int

	// Simulation state
	shots    int
	rng      *rand.Rand
	unwanted []string
	final    *StateVector
	counts   Counts
	lastCost int
}

func initialModel(circuit *Circuit, shots int, rng *rand.Rand, unwanted []string) Model {
	ta := textarea.New()
	ta.Placeholder = "Edit QASM here..."
	ta.SetWidth(40)
	ta.SetHeight(20)
	ta.ShowLineNumbers = true
	ta.KeyMap.InsertNewline.SetEnabled(true)

	m := Model{
		circuit:  circuit,
		qasmEditor: ta,
		focus:    focusCircuit,
		shots:    shots,
		rng:      rng,
		unwanted: unwanted,
	}

	m.syncQASM()
	return m
}

// syncQASM refreshes the QASM editor from the circuit.
func (m *Model) syncQASM() {
	qasm := m.circuit.ToQASM()
	m.qasmEditor.SetValue(qasm)
	m.lastQASM = qasm
}

// parseQASMInput rebuilds the circuit from edited QASM text.
func (m *Model) parseQASMInput() {
	qasm := m.qasmEditor.Value()
	if qasm == m.lastQASM {
		return
	}
	parsed := &Circuit{NumQubits: m.circuit.NumQubits}
	if err := parsed.ParseQASM(qasm); err != nil {
		m.statusMsg = fmt.Sprintf("QASM: %v", err)
		return
	}
	m.circuit = parsed
	m.lastQASM = qasm
	m.invalidateResults()
}

// invalidateResults drops simulation output after any circuit edit.
func (m *Model) invalidateResults() {
	m.final = nil
	m.counts = nil
	m.lastCost = 0
}

// runSimulation executes the full pipeline: ground state, circuit fold,
// measurement, cost.
func (m *Model) runSimulation() {
	final, err := RunCircuit(m.circuit)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Run: %v", err)
		m.invalidateResults()
		return
	}
	counts, err := final.MeasureWith(m.shots, m.rng)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Measure: %v", err)
		m.invalidateResults()
		return
	}
	m.final = final
	m.counts = counts
	m.lastCost = Cost(counts, m.unwanted)
	m.statusMsg = fmt.Sprintf("Ran %d shots", m.shots)
}

// runOptimizer searches the circuit's u3 angles for minimum cost.
func (m *Model) runOptimizer() {
	if len(m.circuit.FreeAngles()) == 0 {
		m.statusMsg = "No u3 angles to optimize"
		return
	}
	optimized, angles, cost := Minimize(m.circuit, m.unwanted, m.shots, 80, m.rng)
	m.circuit = optimized
	m.syncQASM()
	m.runSimulation()
	m.statusMsg = fmt.Sprintf("Optimized: cost %g at angles %v", cost, formatAngles(angles))
}

// formatAngles renders an angle vector compactly for the status line.
func formatAngles(x []float64) string {
	parts := make([]string, len(x))
	for i, v := range x {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// placeGate inserts the pending gate at the cursor position. The cursor
// qubit is the first control for controlled gates, or the target itself.
func (m *Model) placeGate() {
	item := m.pendingItem
	if item == nil {
		return
	}

	g := Gate{Kind: item.kind}
	if item.numControls > 0 {
		g.Controls = append([]int{m.cursorQubit}, m.controlQubits...)
		g.Target = m.targetQubit
	} else {
		g.Target = m.cursorQubit
	}
	if item.needsParams {
		params := parseParams(m.paramInput)
		for len(params) < 3 {
			params = append(params, 0)
		}
		g.Params = &U3Params{Theta: params[0], Phi: params[1], Lambda: params[2]}
	}

	m.circuit.InsertGate(m.cursorStep, g)
	m.cursorStep++
	m.invalidateResults()
	m.syncQASM()

	m.paramInput = ""
	m.controlQubits = nil
	m.pendingItem = nil
}

// nextFreeQubit picks the first qubit usable as a target or extra control.
func (m *Model) nextFreeQubit() int {
	for q := 0; q < m.circuit.NumQubits; q++ {
		if q != m.cursorQubit && !slicesContains(m.controlQubits, q) {
			return q
		}
	}
	return -1
}

// ──────────────────────────── Init / Update ────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		qasmW := max(msg.Width/3-6, 20)
		m.qasmEditor.SetWidth(qasmW)
		editorH := max(msg.Height-18, 4)
		m.qasmEditor.SetHeight(editorH)

	case tea.KeyMsg:
		key := msg.String()
		m.statusMsg = ""

		if key == "ctrl+c" {
			return m, tea.Quit
		}

		switch m.focus {
		case focusCircuit:
			switch key {
			case "q":
				return m, tea.Quit
			case "tab":
				m.focus = focusQASM
				m.qasmEditor.Focus()
			case "ctrl+r":
				m.circuit.Gates = nil
				m.cursorStep = 0
				m.invalidateResults()
				m.syncQASM()
			case "ctrl+s":
				qasm := m.circuit.ToQASM()
				if err := os.WriteFile("circuit.qasm", []byte(qasm), 0644); err != nil {
					m.statusMsg = fmt.Sprintf("Save error: %v", err)
				} else {
					m.statusMsg = "Saved circuit.qasm"
				}
			case "up", "k":
				if m.cursorQubit > 0 {
					m.cursorQubit--
				}
			case "down", "j":
				if m.cursorQubit < m.circuit.NumQubits-1 {
					m.cursorQubit++
				}
			case "left", "h":
				if m.cursorStep > 0 {
					m.cursorStep--
				}
			case "right", "l":
				if m.cursorStep < len(m.circuit.Gates) {
					m.cursorStep++
				}
			case "+", "=":
				m.circuit.NumQubits++
				m.invalidateResults()
				m.syncQASM()
			case "-":
				if m.circuit.NumQubits > 1 {
					m.circuit.NumQubits--
					m.cursorQubit = min(m.cursorQubit, m.circuit.NumQubits-1)
					m.circuit.RemoveGatesOnQubit(m.circuit.NumQubits)
					m.invalidateResults()
					m.syncQASM()
				}
			case "a":
				m.focus = focusMenu
				m.menuCat = 0
				m.menuItem = 0
			case "backspace", "delete":
				m.circuit.RemoveGateAt(m.cursorStep, m.cursorQubit)
				m.invalidateResults()
				m.syncQASM()
			case "r", "enter":
				m.runSimulation()
			case "o":
				m.runOptimizer()
			case "[":
				if m.shots > 100 {
					m.shots -= 100
				}
			case "]":
				m.shots += 100
			}

		case focusMenu:
			switch key {
			case "esc":
				m.focus = focusCircuit
			case "up", "k":
				if m.menuItem > 0 {
					m.menuItem--
				}
			case "down", "j":
				cat := gateMenu[m.menuCat]
				if m.menuItem < len(cat.items)-1 {
					m.menuItem++
				}
			case "left", "h":
				if m.menuCat > 0 {
					m.menuCat--
					m.menuItem = 0
				}
			case "right", "l":
				if m.menuCat < len(gateMenu)-1 {
					m.menuCat++
					m.menuItem = 0
				}
			case "enter":
				item := gateMenu[m.menuCat].items[m.menuItem]
				m.pendingItem = &item
				m.controlQubits = nil

				if item.needsParams {
					m.paramInput = ""
					m.focus = focusInputParam
					break
				}
				m.afterParamsStep()
			}

		case focusSelectTarget:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.controlQubits = nil
				m.pendingItem = nil
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit && !slicesContains(m.controlQubits, next) {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.circuit.NumQubits; next++ {
					if next != m.cursorQubit && !slicesContains(m.controlQubits, next) {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.placeGate()
				m.focus = focusCircuit
			}

		case focusSelectControls:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.controlQubits = nil
				m.pendingItem = nil
			case "up", "k":
				for next := m.targetQubit - 1; next >= 0; next-- {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "down", "j":
				for next := m.targetQubit + 1; next < m.circuit.NumQubits; next++ {
					if next != m.cursorQubit {
						m.targetQubit = next
						break
					}
				}
			case "enter":
				m.controlQubits = append(m.controlQubits, m.targetQubit)
				if len(m.controlQubits)+1 < m.pendingItem.numControls {
					break
				}
				m.focus = focusSelectTarget
				if free := m.nextFreeQubit(); free >= 0 {
					m.targetQubit = free
				}
			}

		case focusInputParam:
			switch key {
			case "esc":
				m.focus = focusCircuit
				m.paramInput = ""
				m.pendingItem = nil
			case "backspace":
				if len(m.paramInput) > 0 {
					m.paramInput = m.paramInput[:len(m.paramInput)-1]
				}
			case "enter":
				if m.paramInput != "" && parseParams(m.paramInput) == nil {
					m.statusMsg = "Invalid parameter — use numbers or pi expressions (e.g. pi/2, 3*pi/4)"
					break
				}
				m.afterParamsStep()
			default:
				if len(key) == 1 {
					ch := key[0]
					if (ch >= '0' && ch <= '9') || ch == '.' || ch == ',' || ch == '-' || ch == 'e' || ch == 'E' || ch == '+' ||
						ch == 'p' || ch == 'i' || ch == '*' || ch == '/' {
						m.paramInput += key
					}
				}
			}

		case focusQASM:
			switch key {
			case "tab":
				m.focus = focusCircuit
				m.qasmEditor.Blur()
			default:
				var cmd tea.Cmd
				m.qasmEditor, cmd = m.qasmEditor.Update(msg)
				cmds = append(cmds, cmd)
				m.parseQASMInput()
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// afterParamsStep advances placement once parameters are settled: straight
// to placement for single-qubit gates, through control/target selection
// for controlled ones.
func (m *Model) afterParamsStep() {
	item := m.pendingItem
	if item == nil {
		return
	}
	if item.numControls == 0 {
		m.placeGate()
		m.focus = focusCircuit
		return
	}
	if m.circuit.NumQubits < item.numControls+1 {
		m.statusMsg = fmt.Sprintf("%s needs %d qubits", item.name, item.numControls+1)
		m.pendingItem = nil
		m.focus = focusCircuit
		return
	}
	if item.numControls > 1 {
		m.focus = focusSelectControls
	} else {
		m.focus = focusSelectTarget
	}
	if free := m.nextFreeQubit(); free >= 0 {
		m.targetQubit = free
	}
}

// Helper function
func slicesContains(slice []int, val int) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	qasmWidth := m.width / 3
	leftWidth := m.width - qasmWidth - 4
	controlsHeight := 5
	resultsHeight := 12
	circuitHeight := max(m.height-controlsHeight-resultsHeight-2, 6)

	circuitPanel := m.renderCircuitPanel(leftWidth, circuitHeight)
	resultsPanel := m.renderResultsPanel(leftWidth, resultsHeight-2)
	leftCol := lipgloss.JoinVertical(lipgloss.Left, circuitPanel, resultsPanel)

	qasmPanel := m.renderQASMPanel(qasmWidth, circuitHeight+resultsHeight-2)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, qasmPanel)
	controlsPanel := m.renderControlsPanel(m.width-4, controlsHeight-2)
	frame := lipgloss.JoinVertical(lipgloss.Left, topRow, controlsPanel)

	if m.focus == focusMenu {
		frame = overlayAt(frame, m.renderMenu(), 2, 2)
	}
	if m.focus == focusInputParam {
		frame = overlayAt(frame, m.renderParamInput(), 2, 2)
	}

	return frame
}

// renderParamInput renders parameter input overlay.
func (m Model) renderParamInput() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Enter Angles"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("theta,phi,lambda: %s_", m.paramInput))
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Examples: pi/2,0,0  ·  1.57,3.14,0"))
	return menuBorderStyle.Render(sb.String())
}
