package qsim

import (
	"fmt"
	"strings"
)

// MaxQubits is the hard construction limit. Backends may enforce a lower
// capacity, but no circuit above this size can be built at all.
const MaxQubits = 24

// Gate operation names. Controlled variants list their controls first and
// the target last in Gate.Qubits.
const (
	OpH       = "H"
	OpX       = "X"
	OpY       = "Y"
	OpZ       = "Z"
	OpS       = "S"
	OpSdg     = "SDG"
	OpT       = "T"
	OpTdg     = "TDG"
	OpRX      = "RX"
	OpRY      = "RY"
	OpRZ      = "RZ"
	OpP       = "P"
	OpCX      = "CX"
	OpCZ      = "CZ"
	OpCP      = "CP"
	OpCCX     = "CCX"
	OpMCX     = "MCX"
	OpSwap    = "SWAP"
	OpMeasure = "MEASURE"
	OpBarrier = "BARRIER"
)

// Gate is a single operation placed on the circuit timeline.
type Gate struct {
	Name   string
	Qubits []int // controls first, target last
	Params []float64
	Clbit  int // classical slot written by MEASURE, -1 otherwise
}

// Target returns the qubit the gate acts on.
func (g Gate) Target() int {
	if len(g.Qubits) == 0 {
		return -1
	}
	return g.Qubits[len(g.Qubits)-1]
}

// Controls returns the control qubits, which may be empty.
func (g Gate) Controls() []int {
	if len(g.Qubits) < 2 {
		return nil
	}
	return g.Qubits[:len(g.Qubits)-1]
}

// IsUnitary reports whether the gate transforms amplitudes, as opposed to
// measurements and barriers.
func (g Gate) IsUnitary() bool {
	return g.Name != OpMeasure && g.Name != OpBarrier
}

/*
Circuit is an ordered sequence of gate operations over a declared set of
qubit and classical bit slots. Builder methods are chainable; the first
invalid append is recorded and every later append becomes a no-op, so a
construction error surfaces once via Err or Validate instead of forcing an
error check on every gate.
*/
type Circuit struct {
	Name      string
	NumQubits int
	NumClbits int
	Gates     []Gate

	err error
}

// NewCircuit declares a circuit over the given quantum and classical slots.
func NewCircuit(name string, qubits, clbits int) (*Circuit, error) {
	if qubits < 1 || qubits > MaxQubits {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidQubitCount, qubits, MaxQubits)
	}
	if clbits < 0 || clbits > MaxQubits {
		return nil, fmt.Errorf("%w: %d classical bits", ErrInvalidQubitCount, clbits)
	}
	return &Circuit{Name: name, NumQubits: qubits, NumClbits: clbits}, nil
}

// Err returns the first construction error, if any.
func (c *Circuit) Err() error {
	return c.err
}

func (c *Circuit) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

func (c *Circuit) checkQubits(qubits ...int) bool {
	if c.err != nil {
		return false
	}
	seen := make(map[int]bool, len(qubits))
	for _, q := range qubits {
		if q < 0 || q >= c.NumQubits {
			c.fail(fmt.Errorf("%w: q[%d] of %d", ErrQubitOutOfRange, q, c.NumQubits))
			return false
		}
		if seen[q] {
			c.fail(fmt.Errorf("%w: q[%d]", ErrDuplicateQubit, q))
			return false
		}
		seen[q] = true
	}
	return true
}

func (c *Circuit) appendGate(name string, qubits []int, params ...float64) *Circuit {
	if !c.checkQubits(qubits...) {
		return c
	}
	c.Gates = append(c.Gates, Gate{Name: name, Qubits: qubits, Params: params, Clbit: -1})
	return c
}

// Single-qubit gates.

func (c *Circuit) H(q int) *Circuit   { return c.appendGate(OpH, []int{q}) }
func (c *Circuit) X(q int) *Circuit   { return c.appendGate(OpX, []int{q}) }
func (c *Circuit) Y(q int) *Circuit   { return c.appendGate(OpY, []int{q}) }
func (c *Circuit) Z(q int) *Circuit   { return c.appendGate(OpZ, []int{q}) }
func (c *Circuit) S(q int) *Circuit   { return c.appendGate(OpS, []int{q}) }
func (c *Circuit) Sdg(q int) *Circuit { return c.appendGate(OpSdg, []int{q}) }
func (c *Circuit) T(q int) *Circuit   { return c.appendGate(OpT, []int{q}) }
func (c *Circuit) Tdg(q int) *Circuit { return c.appendGate(OpTdg, []int{q}) }

func (c *Circuit) RX(theta float64, q int) *Circuit { return c.appendGate(OpRX, []int{q}, theta) }
func (c *Circuit) RY(theta float64, q int) *Circuit { return c.appendGate(OpRY, []int{q}, theta) }
func (c *Circuit) RZ(theta float64, q int) *Circuit { return c.appendGate(OpRZ, []int{q}, theta) }
func (c *Circuit) P(theta float64, q int) *Circuit  { return c.appendGate(OpP, []int{q}, theta) }

// Multi-qubit gates.

func (c *Circuit) CX(control, target int) *Circuit { return c.appendGate(OpCX, []int{control, target}) }
func (c *Circuit) CZ(control, target int) *Circuit { return c.appendGate(OpCZ, []int{control, target}) }
func (c *Circuit) Swap(a, b int) *Circuit          { return c.appendGate(OpSwap, []int{a, b}) }

func (c *Circuit) CP(theta float64, control, target int) *Circuit {
	return c.appendGate(OpCP, []int{control, target}, theta)
}

func (c *Circuit) CCX(c1, c2, target int) *Circuit {
	return c.appendGate(OpCCX, []int{c1, c2, target})
}

// MCX appends a multi-controlled X with an arbitrary number of controls.
func (c *Circuit) MCX(controls []int, target int) *Circuit {
	qubits := make([]int, 0, len(controls)+1)
	qubits = append(qubits, controls...)
	qubits = append(qubits, target)
	return c.appendGate(OpMCX, qubits)
}

// Measure reads qubit q into classical slot cl.
func (c *Circuit) Measure(q, cl int) *Circuit {
	if !c.checkQubits(q) {
		return c
	}
	if cl < 0 || cl >= c.NumClbits {
		c.fail(fmt.Errorf("%w: c[%d] of %d", ErrClbitOutOfRange, cl, c.NumClbits))
		return c
	}
	c.Gates = append(c.Gates, Gate{Name: OpMeasure, Qubits: []int{q}, Clbit: cl})
	return c
}

// MeasureAll measures qubit i into classical slot i for every declared slot.
func (c *Circuit) MeasureAll() *Circuit {
	n := c.NumQubits
	if c.NumClbits < n {
		n = c.NumClbits
	}
	for q := 0; q < n; q++ {
		c.Measure(q, q)
	}
	return c
}

// Barrier is a no-op marker separating logical sections of the circuit.
func (c *Circuit) Barrier() *Circuit {
	if c.err != nil {
		return c
	}
	c.Gates = append(c.Gates, Gate{Name: OpBarrier, Clbit: -1})
	return c
}

// Validate re-checks every slot reference so that hand-built gate lists are
// caught as well as builder misuse.
func (c *Circuit) Validate() error {
	if c.err != nil {
		return c.err
	}
	if c.NumQubits < 1 || c.NumQubits > MaxQubits {
		return fmt.Errorf("%w: %d", ErrInvalidQubitCount, c.NumQubits)
	}
	for i, g := range c.Gates {
		if g.Name == OpBarrier {
			continue
		}
		if len(g.Qubits) == 0 {
			return fmt.Errorf("%w: gate %d (%s) has no qubits", ErrMalformedCircuit, i, g.Name)
		}
		seen := make(map[int]bool, len(g.Qubits))
		for _, q := range g.Qubits {
			if q < 0 || q >= c.NumQubits {
				return fmt.Errorf("%w: gate %d (%s) references q[%d]", ErrQubitOutOfRange, i, g.Name, q)
			}
			if seen[q] {
				return fmt.Errorf("%w: gate %d (%s) repeats q[%d]", ErrDuplicateQubit, i, g.Name, q)
			}
			seen[q] = true
		}
		if g.Name == OpMeasure && (g.Clbit < 0 || g.Clbit >= c.NumClbits) {
			return fmt.Errorf("%w: gate %d writes c[%d]", ErrClbitOutOfRange, i, g.Clbit)
		}
	}
	return nil
}

// MeasuredClbits returns how many classical slots actually receive a value.
func (c *Circuit) MeasuredClbits() int {
	highest := -1
	for _, g := range c.Gates {
		if g.Name == OpMeasure && g.Clbit > highest {
			highest = g.Clbit
		}
	}
	return highest + 1
}

// requiresTrajectory reports whether any unitary gate follows a measurement,
// in which case shot execution has to collapse the state per shot instead of
// sampling one final distribution.
func (c *Circuit) requiresTrajectory() bool {
	measured := false
	for _, g := range c.Gates {
		switch g.Name {
		case OpMeasure:
			measured = true
		case OpBarrier:
		default:
			if measured {
				return true
			}
		}
	}
	return false
}

// Draw renders a plain-text diagram, one row per qubit and one column per
// gate, in circuit order.
func (c *Circuit) Draw() string {
	cols := make([][]string, 0, len(c.Gates))
	for _, g := range c.Gates {
		col := make([]string, c.NumQubits)
		switch g.Name {
		case OpBarrier:
			for q := range col {
				col[q] = "░"
			}
		case OpMeasure:
			if t := g.Target(); t >= 0 && t < c.NumQubits {
				col[t] = fmt.Sprintf("M→c%d", g.Clbit)
			}
		default:
			for _, ctrl := range g.Controls() {
				if ctrl >= 0 && ctrl < c.NumQubits {
					col[ctrl] = "●"
				}
			}
			if t := g.Target(); t >= 0 && t < c.NumQubits {
				col[t] = gateLabel(g)
			}
		}
		cols = append(cols, col)
	}

	var sb strings.Builder
	for q := 0; q < c.NumQubits; q++ {
		fmt.Fprintf(&sb, "q%-2d:", q)
		for _, col := range cols {
			sb.WriteString("─")
			sb.WriteString(padGate(col[q], columnWidth(col)))
		}
		sb.WriteString("─\n")
	}
	return sb.String()
}

func gateLabel(g Gate) string {
	switch g.Name {
	case OpCX, OpCCX, OpMCX:
		return "X"
	case OpCZ:
		return "Z"
	case OpCP, OpP:
		return fmt.Sprintf("P(%.2f)", g.Params[0])
	case OpRX, OpRY, OpRZ:
		return fmt.Sprintf("R%s(%.2f)", strings.ToLower(g.Name[1:]), g.Params[0])
	case OpSdg:
		return "S†"
	case OpTdg:
		return "T†"
	default:
		return g.Name
	}
}

func columnWidth(col []string) int {
	width := 1
	for _, cell := range col {
		if n := len([]rune(cell)); n > width {
			width = n
		}
	}
	return width
}

func padGate(cell string, width int) string {
	if cell == "" {
		return strings.Repeat("─", width)
	}
	pad := width - len([]rune(cell))
	if pad < 0 {
		pad = 0
	}
	return cell + strings.Repeat("─", pad)
}
