package main

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the full benchmark configuration. It is built once, passed
// explicitly to the Runner, and never mutated, so both variants are
// guaranteed to run under the same shot budget, seed, and noise constants.
type Config struct {
	Shots             int
	Seed              uint64
	OptimizationLevel int
	Qubits            int
	Layers            int
	LogLevel          string
	Noise             NoiseProfile
}

// DefaultConfig returns the fixed reference configuration: 8192 shots,
// seed 42, best-effort compilation, 10 qubits, 2 layers.
func DefaultConfig() Config {
	return Config{
		Shots:             8192,
		Seed:              42,
		OptimizationLevel: 3,
		Qubits:            10,
		Layers:            2,
		LogLevel:          "info",
		Noise:             DefaultNoiseProfile(),
	}
}

// LoadConfig builds the configuration from environment variables (and a
// .env file when present), falling back to the reference defaults.
func LoadConfig() Config {
	// A missing .env file is fine; env vars still apply.
	_ = godotenv.Load()

	cfg := DefaultConfig()
	cfg.Shots = getEnvInt("EGS_SHOTS", cfg.Shots)
	cfg.Seed = uint64(getEnvInt("EGS_SEED", int(cfg.Seed)))
	cfg.OptimizationLevel = getEnvInt("EGS_OPT_LEVEL", cfg.OptimizationLevel)
	cfg.Qubits = getEnvInt("EGS_QUBITS", cfg.Qubits)
	cfg.Layers = getEnvInt("EGS_LAYERS", cfg.Layers)
	cfg.LogLevel = getEnv("EGS_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

// getEnv retrieves an environment variable, returning a fallback if the
// variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}
