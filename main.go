package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newLogger(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// buildVariants constructs both scheduling variants from the configured
// seed, for the subcommands that inspect circuits without executing them.
func buildVariants(cfg Config) (*Circuit, *Circuit, error) {
	params := RandomParameters(ParamCount(cfg.Qubits, cfg.Layers), cfg.Seed)
	std, err := BuildStandard(cfg.Qubits, cfg.Layers, params)
	if err != nil {
		return nil, nil, err
	}
	egs, err := BuildEGS(cfg.Qubits, cfg.Layers, params)
	if err != nil {
		return nil, nil, err
	}
	return std, egs, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "egsbench",
		Short: "Benchmark entropic gate scheduling against standard interleaved ansatz ordering",
		Long: "egsbench builds the same variational ansatz under two gate schedules\n" +
			"(standard interleaved vs EGS layered-deferred), compiles both for a noisy\n" +
			"linear-coupling target, executes them under a T1/T2 + depolarizing noise\n" +
			"model, and reports dominant-outcome fidelity and compiled depth.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			log := newLogger(cfg)
			fmt.Println("Running EGS Hardware-Aware Benchmark...")
			report, err := NewRunner(cfg, log).Run(cfg.Qubits, cfg.Layers)
			if err != nil {
				return err
			}
			fmt.Println(RenderReport(report))
			return nil
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "tui",
		Short: "Run the benchmark in an interactive viewer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := LoadConfig()
			return runTUI(cfg, newLogger(cfg))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "draw",
		Short: "Draw both ansatz variants as circuit diagrams",
		RunE: func(cmd *cobra.Command, args []string) error {
			std, egs, err := buildVariants(LoadConfig())
			if err != nil {
				return err
			}
			fmt.Println(RenderCircuit(std, "Standard (interleaved)"))
			fmt.Println(RenderCircuit(egs, "EGS (layered, deferred entanglement)"))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "qasm",
		Short: "Dump both ansatz variants as QASM 2.0",
		RunE: func(cmd *cobra.Command, args []string) error {
			std, egs, err := buildVariants(LoadConfig())
			if err != nil {
				return err
			}
			fmt.Println("// Standard (interleaved)")
			fmt.Print(std.ToQASM())
			fmt.Println()
			fmt.Println("// EGS (layered, deferred entanglement)")
			fmt.Print(egs.ToQASM())
			return nil
		},
	})

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
