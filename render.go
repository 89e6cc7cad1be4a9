package qsim

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const histogramWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("76"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

/*
RenderHistogram draws the measurement counts as a horizontal bar chart for
the terminal, sorted by count with the bitstring labels on the left. The
layout follows what readers expect from a counts plot: every outcome on its
own row, bar length proportional to probability.
*/
func RenderHistogram(res *Result) (string, error) {
	if res == nil || len(res.Counts) == 0 {
		return "", fmt.Errorf("%w: nothing to render", ErrEmptyResult)
	}

	outcomes := res.Top(len(res.Counts))
	total := res.TotalCounts()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s  (%d shots on %s)", res.Circuit, total, res.Backend)))
	sb.WriteByte('\n')

	max := outcomes[0].Count
	for _, o := range outcomes {
		width := o.Count * histogramWidth / max
		if width < 1 {
			width = 1
		}
		prob := float64(o.Count) / float64(total)
		fmt.Fprintf(&sb, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%8s", o.Label)),
			barStyle.Render(strings.Repeat("█", width)),
			faintStyle.Render(fmt.Sprintf("%5d  %.3f", o.Count, prob)),
		)
	}
	return sb.String(), nil
}

// RenderState lists the statevector amplitudes with their probabilities, for
// exact-mode results.
func RenderState(res *Result) (string, error) {
	if res == nil || res.State == nil {
		return "", fmt.Errorf("%w: no statevector", ErrEmptyResult)
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s  (exact, %s)", res.Circuit, res.Backend)))
	sb.WriteByte('\n')
	for i, a := range res.State.Amplitudes {
		p := res.State.Probability(i)
		if p < NormTolerance {
			continue
		}
		fmt.Fprintf(&sb, "%s %s\n",
			labelStyle.Render(fmt.Sprintf("|%s⟩", FormatBasisState(i, res.State.NumQubits))),
			faintStyle.Render(fmt.Sprintf("%+.4f%+.4fi  p=%.4f", real(a), imag(a), p)),
		)
	}
	return sb.String(), nil
}

// RenderMetrics summarizes a backend's run history for the terminal.
func RenderMetrics(m *Metrics) string {
	snapshot := m.Export()
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("backend metrics"))
	sb.WriteByte('\n')
	for _, key := range []string{"run_count", "failures", "total_run_time", "avg_run_time"} {
		fmt.Fprintf(&sb, "%s %v\n",
			labelStyle.Render(fmt.Sprintf("%18s", key)),
			snapshot[key],
		)
	}
	return sb.String()
}
