// Command payments-engine replays a CSV transaction stream against a set of
// client accounts and writes the final account listing to stdout.
//
// Usage:
//
//	payments-engine <transactions.csv>
//
// Diagnostics go to stderr (level selected via LOG_LEVEL, default info).
// Any failure exits non-zero with nothing written to stdout.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	payments "github.com/lewisbelcher/payments-engine"
	"github.com/lewisbelcher/payments-engine/log"
	zapadapter "github.com/lewisbelcher/payments-engine/zap"
)

var errUsage = errors.New("expected one positional argument (path to CSV file to process)")

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := zapadapter.New(payments.GetenvOrDefault("LOG_LEVEL", "info"))
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	filepath, err := parseArg(os.Args)
	if err != nil {
		return err
	}

	input, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer input.Close()

	runLogger := logger.With(log.String("run_id", uuid.NewString()))

	return payments.Run(context.Background(), input, os.Stdout, runLogger)
}

// parseArg extracts the single positional argument, rejecting any unexpected
// extras.
func parseArg(args []string) (string, error) {
	if len(args) != 2 {
		return "", errUsage
	}

	return args[1], nil
}
