package main

import (
	"fmt"
	"strings"
)

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

// gateDisplayName returns a short display name for a gate type.
func gateDisplayName(gateType string) string {
	switch gateType {
	case "MEASURE":
		return "M"
	default:
		return gateType
	}
}

// targetSymbol returns the wire symbol for the target qubit of a two-qubit
// gate.
func targetSymbol(gateType string) string {
	if gateType == "CZ" {
		return "●"
	}
	return "⊕"
}

// stepGrid indexes a circuit's gates by timeline step for rendering.
type stepGrid struct {
	circuit *Circuit
	byStep  map[int][]Gate
	widths  []int
}

func newStepGrid(c *Circuit) *stepGrid {
	g := &stepGrid{
		circuit: c,
		byStep:  make(map[int][]Gate),
		widths:  make([]int, c.MaxSteps),
	}
	for _, gate := range c.Gates {
		g.byStep[gate.Step] = append(g.byStep[gate.Step], gate)
	}
	for step := range c.MaxSteps {
		w := 3
		for _, gate := range g.byStep[step] {
			if gate.Type == "BARRIER" {
				continue
			}
			if cw := len(gateDisplayName(gate.Type)) + 2; cw > w {
				w = cw
			}
		}
		g.widths[step] = w
	}
	return g
}

// cellAt describes what occupies the cell at (step, qubit).
type cell struct {
	gate      *Gate
	isControl bool
	isBarrier bool
	spans     bool // a two-qubit gate passes across this wire boundary
}

func (g *stepGrid) cellAt(step, qubit int) cell {
	var c cell
	for i := range g.byStep[step] {
		gate := &g.byStep[step][i]
		if gate.Type == "BARRIER" {
			c.isBarrier = true
			continue
		}
		if gate.Target == qubit || gate.Control == qubit {
			c.gate = gate
			c.isControl = gate.Control == qubit
		}
	}
	return c
}

// spansBoundary reports whether a two-qubit gate at the step crosses the
// wire boundary between qubit and qubit+1.
func (g *stepGrid) spansBoundary(step, qubit int) bool {
	for _, gate := range g.byStep[step] {
		if gate.Type == "BARRIER" {
			return true
		}
		if !gate.IsTwoQubit() {
			continue
		}
		lo, hi := min(gate.Control, gate.Target), max(gate.Control, gate.Target)
		if lo <= qubit && qubit+1 <= hi {
			return true
		}
	}
	return false
}

// RenderCircuit draws the circuit as wire rows with one column per timeline
// step, in the visual vocabulary of the interactive deck: boxed gate names,
// filled control dots, ⊕ targets, and full-height barrier fences.
func RenderCircuit(c *Circuit, title string) string {
	grid := newStepGrid(c)
	var sb strings.Builder
	if title != "" {
		sb.WriteString(titleStyle.Render(title))
		sb.WriteString("\n")
	}

	for q := range c.NumQubits {
		sb.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q[%d] ", q)))
		for step := range c.MaxSteps {
			w := grid.widths[step]
			dashL := (w - 1) / 2
			dashR := w - dashL - 1
			info := grid.cellAt(step, q)
			switch {
			case info.gate != nil && info.isControl:
				sb.WriteString(strings.Repeat("─", dashL) + gateStyle.Render("●") + strings.Repeat("─", dashR))
			case info.gate != nil && info.gate.IsTwoQubit():
				sb.WriteString(strings.Repeat("─", dashL) + gateStyle.Render(targetSymbol(info.gate.Type)) + strings.Repeat("─", dashR))
			case info.gate != nil:
				name := gateDisplayName(info.gate.Type)
				sb.WriteString("┤" + gateStyle.Render(padCenter(name, w-2)) + "├")
			case info.isBarrier:
				sb.WriteString(dimStyle.Render(strings.Repeat("─", dashL)+"│"+strings.Repeat("─", dashR)))
			default:
				sb.WriteString(strings.Repeat("─", w))
			}
		}
		sb.WriteString("\n")

		// Connector row between adjacent wires.
		if q < c.NumQubits-1 {
			sb.WriteString(strings.Repeat(" ", 5))
			for step := range c.MaxSteps {
				w := grid.widths[step]
				half := (w - 1) / 2
				if grid.spansBoundary(step, q) {
					sb.WriteString(strings.Repeat(" ", half) + dimStyle.Render("│") + strings.Repeat(" ", w-half-1))
				} else {
					sb.WriteString(strings.Repeat(" ", w))
				}
			}
			sb.WriteString("\n")
		}
	}

	return circuitStyle.Render(strings.TrimRight(sb.String(), "\n"))
}

// RenderReport formats the paired comparison as a styled summary block.
func RenderReport(r *Report) string {
	gain := r.ImprovementPct()
	gainStyle := winStyle
	if gain < 0 {
		gainStyle = lossStyle
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("EGS Hardware-Aware Benchmark — %d qubits, %d layers", r.NumQubits, r.NumLayers)))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Standard Fidelity: %.4f\n", r.Standard.Metrics.Fidelity)
	fmt.Fprintf(&sb, "EGS Fidelity:      %.4f\n", r.EGS.Metrics.Fidelity)
	sb.WriteString("Improvement:       " + gainStyle.Render(fmt.Sprintf("%+.1f%%", gain)) + "\n\n")
	fmt.Fprintf(&sb, "Depth (std/egs):   %d / %d\n", r.Standard.Metrics.Depth, r.EGS.Metrics.Depth)
	fmt.Fprintf(&sb, "Entropy (std/egs): %.3f / %.3f nats\n", r.Standard.Metrics.Entropy, r.EGS.Metrics.Entropy)
	sb.WriteString(dimStyle.Render(fmt.Sprintf(
		"gates std: %d×1q %d×2q → compiled %d×1q %d×2q | egs: %d×1q %d×2q → compiled %d×1q %d×2q",
		r.Standard.PreCounts.OneQubit, r.Standard.PreCounts.TwoQubit,
		r.Standard.PostCounts.OneQubit, r.Standard.PostCounts.TwoQubit,
		r.EGS.PreCounts.OneQubit, r.EGS.PreCounts.TwoQubit,
		r.EGS.PostCounts.OneQubit, r.EGS.PostCounts.TwoQubit,
	)))

	return reportStyle.Render(sb.String())
}
