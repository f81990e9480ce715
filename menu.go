package main

import (
	"fmt"
	"strings"
)

// menuItem represents a single gate choice in the picker.
type menuItem struct {
	name        string
	kind        GateKind
	symbol      string
	numControls int
	needsParams bool
	paramHint   string
}

// menuCategory groups related menu items under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// gateMenu defines the gate picker categories and items. The set mirrors
// the closed gate library: fixed gates, the u3 family, and their
// controlled forms.
var gateMenu = []menuCategory{
	{
		name: "Single Qubit",
		items: []menuItem{
			{name: "Hadamard", kind: GateHadamard, symbol: "H"},
			{name: "Pauli-X (NOT)", kind: GatePauliX, symbol: "X"},
			{name: "Identity", kind: GateIdentity, symbol: "I"},
			{name: "Universal U3", kind: GateU3, symbol: "U3", needsParams: true, paramHint: "theta,phi,lambda"},
		},
	},
	{
		name: "Controlled",
		items: []menuItem{
			{name: "CNOT", kind: GatePauliX, symbol: "●─⊕", numControls: 1},
			{name: "Controlled-H", kind: GateHadamard, symbol: "●─H", numControls: 1},
			{name: "Controlled-U3", kind: GateU3, symbol: "●─U3", numControls: 1, needsParams: true, paramHint: "theta,phi,lambda"},
			{name: "Toffoli (CCX)", kind: GatePauliX, symbol: "●─●─⊕", numControls: 2},
		},
	},
}

// renderMenu renders the floating gate-picker popup.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Add Gate"))
	sb.WriteString("\n")

	// Category tabs
	for i, cat := range gateMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(gateMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 40)))
	sb.WriteString("\n")

	// Items in the selected category
	cat := gateMenu[m.menuCat]
	for i, item := range cat.items {
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ "))
			sb.WriteString(menuSelectedStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(gateStyle.Render(item.symbol))
		} else {
			sb.WriteString("   ")
			sb.WriteString(menuNormalStyle.Render(fmt.Sprintf("%-16s", item.name)))
			sb.WriteString(dimStyle.Render(item.symbol))
		}
		if item.numControls > 0 {
			sb.WriteString(dimStyle.Render(" →target"))
		}
		if item.needsParams {
			sb.WriteString(dimStyle.Render(fmt.Sprintf(" (%s)", item.paramHint)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Ok  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
