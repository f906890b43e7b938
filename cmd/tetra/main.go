// Command tetra is the option pricing lab CLI: closed-form pricing,
// Greeks, payoff diagrams, parity checks, strategies, and the numerical
// audit, all without a running server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/jwaldner/tetra/internal/cli"
	"github.com/jwaldner/tetra/internal/config"
	"github.com/jwaldner/tetra/internal/logger"
)

func main() {
	// Load .env file if present
	_ = godotenv.Load()

	cfg := config.Load()

	// Errors only, so command output stays clean
	if err := logger.InitWithConfig("error", cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
	}

	if err := cli.NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
