package qsim

import (
	"fmt"
	"strings"
)

/*
ToQASM renders the circuit as OpenQASM 2.0 so it can be replayed on any
toolchain that speaks the format. Gate names follow the qelib1 vocabulary;
the multi-controlled X is emitted as the c3x/c4x library gates for small
control counts and rejected above that, since qelib1 has no generic form.
*/
func ToQASM(c *Circuit) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("OPENQASM 2.0;\n")
	sb.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&sb, "qreg q[%d];\n", c.NumQubits)
	if c.NumClbits > 0 {
		fmt.Fprintf(&sb, "creg c[%d];\n", c.NumClbits)
	}

	for i, g := range c.Gates {
		line, err := qasmLine(g, c.NumQubits)
		if err != nil {
			return "", fmt.Errorf("gate %d: %w", i, err)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String(), nil
}

func qasmLine(g Gate, numQubits int) (string, error) {
	switch g.Name {
	case OpH, OpX, OpY, OpZ, OpS, OpT:
		return fmt.Sprintf("%s q[%d];", strings.ToLower(g.Name), g.Target()), nil
	case OpSdg:
		return fmt.Sprintf("sdg q[%d];", g.Target()), nil
	case OpTdg:
		return fmt.Sprintf("tdg q[%d];", g.Target()), nil
	case OpRX, OpRY, OpRZ:
		return fmt.Sprintf("%s(%s) q[%d];", strings.ToLower(g.Name), qasmAngle(g.Params[0]), g.Target()), nil
	case OpP:
		return fmt.Sprintf("u1(%s) q[%d];", qasmAngle(g.Params[0]), g.Target()), nil
	case OpCX:
		return fmt.Sprintf("cx q[%d],q[%d];", g.Qubits[0], g.Qubits[1]), nil
	case OpCZ:
		return fmt.Sprintf("cz q[%d],q[%d];", g.Qubits[0], g.Qubits[1]), nil
	case OpCP:
		return fmt.Sprintf("cu1(%s) q[%d],q[%d];", qasmAngle(g.Params[0]), g.Qubits[0], g.Qubits[1]), nil
	case OpCCX:
		return fmt.Sprintf("ccx q[%d],q[%d],q[%d];", g.Qubits[0], g.Qubits[1], g.Qubits[2]), nil
	case OpMCX:
		return qasmMCX(g)
	case OpSwap:
		return fmt.Sprintf("swap q[%d],q[%d];", g.Qubits[0], g.Qubits[1]), nil
	case OpMeasure:
		return fmt.Sprintf("measure q[%d] -> c[%d];", g.Qubits[0], g.Clbit), nil
	case OpBarrier:
		refs := make([]string, numQubits)
		for q := range refs {
			refs[q] = fmt.Sprintf("q[%d]", q)
		}
		return fmt.Sprintf("barrier %s;", strings.Join(refs, ",")), nil
	default:
		return "", fmt.Errorf("%w: no QASM form for %s", ErrMalformedCircuit, g.Name)
	}
}

func qasmMCX(g Gate) (string, error) {
	refs := make([]string, len(g.Qubits))
	for i, q := range g.Qubits {
		refs[i] = fmt.Sprintf("q[%d]", q)
	}
	switch len(g.Controls()) {
	case 0:
		return fmt.Sprintf("x %s;", refs[0]), nil
	case 1:
		return fmt.Sprintf("cx %s;", strings.Join(refs, ",")), nil
	case 2:
		return fmt.Sprintf("ccx %s;", strings.Join(refs, ",")), nil
	case 3:
		return fmt.Sprintf("c3x %s;", strings.Join(refs, ",")), nil
	case 4:
		return fmt.Sprintf("c4x %s;", strings.Join(refs, ",")), nil
	default:
		return "", fmt.Errorf("%w: MCX with %d controls has no qelib1 gate", ErrMalformedCircuit, len(g.Controls()))
	}
}

func qasmAngle(theta float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.10f", theta), "0"), ".")
}
