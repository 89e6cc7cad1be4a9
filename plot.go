package qsim

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// SaveHistogram writes the counts of a sampled result as a bar chart PNG.
// Bars are ordered by bitstring so repeated runs produce the same figure.
func SaveHistogram(res *Result, path string) error {
	if res == nil || len(res.Counts) == 0 {
		return fmt.Errorf("%w: nothing to plot", ErrEmptyResult)
	}

	outcomes := res.Top(len(res.Counts))
	// Label order, not count order, so the x axis reads like a register.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].Label < outcomes[j].Label })

	values := make(plotter.Values, len(outcomes))
	labels := make([]string, len(outcomes))
	for i, o := range outcomes {
		values[i] = float64(o.Count)
		labels[i] = o.Label
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (%d shots)", res.Circuit, res.TotalCounts())
	p.Y.Label.Text = "counts"
	p.X.Label.Text = "outcome"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	bars.Color = plotter.DefaultLineStyle.Color
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// SaveProbabilities writes the exact statevector distribution as a bar chart
// PNG, one bar per basis state with non-negligible probability.
func SaveProbabilities(res *Result, path string) error {
	if res == nil || res.State == nil {
		return fmt.Errorf("%w: no statevector", ErrEmptyResult)
	}

	var (
		values plotter.Values
		labels []string
	)
	for i, p := range res.State.Probabilities() {
		if p < NormTolerance {
			continue
		}
		values = append(values, p)
		labels = append(labels, FormatBasisState(i, res.State.NumQubits))
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (exact)", res.Circuit)
	p.Y.Label.Text = "probability"
	p.Y.Max = 1
	p.X.Label.Text = "basis state"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return err
	}
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

/*
SaveBloch draws the equatorial projection of a single qubit's Bloch vector:
the unit circle in the X-Z plane with the state drawn as a point, plus the
pole markers. A two-dimensional cut is enough for the demo circuits, whose
single-qubit states all live in that plane.
*/
func SaveBloch(q Qubit, title, path string) error {
	x, _, z := q.Bloch()

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "⟨X⟩"
	p.Y.Label.Text = "⟨Z⟩"
	p.X.Min, p.X.Max = -1.2, 1.2
	p.Y.Min, p.Y.Max = -1.2, 1.2

	circle := make(plotter.XYs, 0, 129)
	for i := 0; i <= 128; i++ {
		t := 2 * math.Pi * float64(i) / 128
		circle = append(circle, plotter.XY{X: math.Cos(t), Y: math.Sin(t)})
	}
	ring, err := plotter.NewLine(circle)
	if err != nil {
		return err
	}
	p.Add(ring)

	point, err := plotter.NewScatter(plotter.XYs{{X: x, Y: z}})
	if err != nil {
		return err
	}
	point.GlyphStyle.Radius = vg.Points(5)
	point.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(point)

	poles, err := plotter.NewScatter(plotter.XYs{{X: 0, Y: 1}, {X: 0, Y: -1}})
	if err != nil {
		return err
	}
	poles.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(poles)

	return p.Save(4*vg.Inch, 4*vg.Inch, path)
}
