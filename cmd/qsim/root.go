package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "qsim",
	Short: "Run quantum algorithm demos on a local statevector simulator",
	Long: `qsim builds small quantum circuits (Bell pairs, teleportation, Grover
search, the quantum Fourier transform, phase estimation, a VQE ansatz, a
coined quantum walk and the bit-flip repetition code), runs them on a local
simulator, and reports the outcome histograms in the terminal and as PNG
figures.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Int("shots", 2048, "number of measurement shots per demo")
	flags.Uint64("seed", 42, "random seed; 0 means non-deterministic")
	flags.String("out", ".", "directory for generated figures")
	flags.Bool("no-plot", false, "skip writing PNG figures")

	viper.SetEnvPrefix("qsim")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("shots", flags.Lookup("shots"))
	_ = viper.BindPFlag("seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("out", flags.Lookup("out"))
	_ = viper.BindPFlag("no-plot", flags.Lookup("no-plot"))
}
