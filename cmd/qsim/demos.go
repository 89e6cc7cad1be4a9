package main

import (
	"context"
	"fmt"
	"math"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/qsim"
)

// demo pairs a figure slot with a circuit constructor so the all command and
// the individual subcommands stay in step.
type demo struct {
	index int
	slug  string
	build func() (*qsim.Circuit, error)
}

var (
	groverQubits  int
	groverTarget  string
	ghzQubits     int
	superQubits   int
	vqeQubits     int
	walkSteps     int
	teleportTheta float64
	phaseCounting int
	phaseValue    float64
)

func demos() []demo {
	return []demo{
		{1, "bell", qsim.Bell},
		{2, "teleportation", func() (*qsim.Circuit, error) { return qsim.Teleportation(teleportTheta) }},
		{3, "grover", func() (*qsim.Circuit, error) { return qsim.Grover(groverQubits, groverTarget) }},
		{4, "qft", func() (*qsim.Circuit, error) { return qsim.QFTDemo(3) }},
		{5, "phase_estimation", func() (*qsim.Circuit, error) { return qsim.PhaseEstimation(phaseCounting, phaseValue) }},
		{6, "vqe", func() (*qsim.Circuit, error) { return qsim.VQE(vqeQubits) }},
		{7, "quantum_walk", func() (*qsim.Circuit, error) { return qsim.QuantumWalk(walkSteps) }},
		{8, "error_correction", qsim.BitFlipCode},
		{9, "ghz", func() (*qsim.Circuit, error) { return qsim.GHZ(ghzQubits) }},
		{10, "superposition", func() (*qsim.Circuit, error) { return qsim.Superposition(superQubits) }},
	}
}

func newBackend(ctx context.Context) *qsim.SamplerBackend {
	config := qsim.NewConfig()
	config.Shots = viper.GetInt("shots")
	config.Seed = viper.GetUint64("seed")
	return qsim.NewSamplerBackend(ctx, config)
}

func runDemo(ctx context.Context, backend *qsim.SamplerBackend, d demo) error {
	circuit, err := d.build()
	if err != nil {
		return err
	}

	fmt.Printf("\n=== %s ===\n%s\n", circuit.Name, circuit.Draw())

	res, err := backend.Run(ctx, circuit)
	if err != nil {
		return err
	}
	view, err := qsim.RenderHistogram(res)
	if err != nil {
		return err
	}
	fmt.Println(view)

	if viper.GetBool("no-plot") {
		return nil
	}
	path := filepath.Join(viper.GetString("out"), fmt.Sprintf("figure_%02d_%s.png", d.index, d.slug))
	if err := qsim.SaveHistogram(res, path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// demoRunE runs a single demo with a short-lived backend.
func demoRunE(d demo) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		backend := newBackend(cmd.Context())
		defer backend.Close()
		return runDemo(cmd.Context(), backend, d)
	}
}

func init() {
	byIndex := make(map[int]demo, len(demos()))
	for _, d := range demos() {
		byIndex[d.index] = d
	}

	bellCmd := &cobra.Command{
		Use:   "bell",
		Short: "Prepare and measure the |Φ+⟩ Bell pair",
		RunE:  demoRunE(byIndex[1]),
	}

	teleportCmd := &cobra.Command{
		Use:   "teleport",
		Short: "Teleport an RY-rotated qubit over a Bell pair",
		RunE:  demoRunE(byIndex[2]),
	}
	teleportCmd.Flags().Float64Var(&teleportTheta, "theta", math.Pi/4, "rotation angle of the teleported state")

	groverCmd := &cobra.Command{
		Use:   "grover",
		Short: "Search for a marked bitstring with Grover's algorithm",
		RunE:  demoRunE(byIndex[3]),
	}
	groverCmd.Flags().IntVar(&groverQubits, "qubits", 3, "search space width in qubits")
	groverCmd.Flags().StringVar(&groverTarget, "target", "101", "marked bitstring")

	qftCmd := &cobra.Command{
		Use:   "qft",
		Short: "Fourier-transform a basis state and sample",
		RunE:  demoRunE(byIndex[4]),
	}

	phaseCmd := &cobra.Command{
		Use:   "phase",
		Short: "Estimate an eigenphase with quantum phase estimation",
		RunE:  demoRunE(byIndex[5]),
	}
	phaseCmd.Flags().IntVar(&phaseCounting, "counting", 3, "counting register width")
	phaseCmd.Flags().Float64Var(&phaseValue, "phase", 0.125, "eigenphase to estimate, as a fraction of 2π")

	vqeCmd := &cobra.Command{
		Use:   "vqe",
		Short: "Sample a hardware-efficient VQE ansatz at fixed angles",
		RunE:  demoRunE(byIndex[6]),
	}
	vqeCmd.Flags().IntVar(&vqeQubits, "qubits", 3, "ansatz width in qubits")

	walkCmd := &cobra.Command{
		Use:   "walk",
		Short: "Run a coined discrete-time quantum walk",
		RunE:  demoRunE(byIndex[7]),
	}
	walkCmd.Flags().IntVar(&walkSteps, "steps", 3, "number of walk steps")

	qecCmd := &cobra.Command{
		Use:   "qec",
		Short: "Correct a bit flip with the three-qubit repetition code",
		RunE:  demoRunE(byIndex[8]),
	}

	ghzCmd := &cobra.Command{
		Use:   "ghz",
		Short: "Prepare and measure an n-qubit GHZ state",
		RunE:  demoRunE(byIndex[9]),
	}
	ghzCmd.Flags().IntVar(&ghzQubits, "qubits", 3, "GHZ state width in qubits")

	superCmd := &cobra.Command{
		Use:   "superposition",
		Short: "Measure a uniform superposition over n qubits",
		RunE:  demoRunE(byIndex[10]),
	}
	superCmd.Flags().IntVar(&superQubits, "qubits", 3, "register width in qubits")

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run every demo in order and report backend metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			backend := newBackend(cmd.Context())
			defer backend.Close()
			for _, d := range demos() {
				if err := runDemo(cmd.Context(), backend, d); err != nil {
					return fmt.Errorf("%s: %w", d.slug, err)
				}
			}
			fmt.Println()
			fmt.Println(qsim.RenderMetrics(backend.Metrics()))
			return nil
		},
	}

	rootCmd.AddCommand(
		bellCmd, teleportCmd, groverCmd, qftCmd, phaseCmd,
		vqeCmd, walkCmd, qecCmd, ghzCmd, superCmd, allCmd,
	)
}
