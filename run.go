package payments

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lewisbelcher/payments-engine/csvio"
	"github.com/lewisbelcher/payments-engine/engine"
	"github.com/lewisbelcher/payments-engine/log"
)

// Run reads and processes all transactions from input and writes the final
// account listing to output. If logger is nil, a no-op logger is used.
//
// Output is all-or-nothing: accounts are only serialized after the entire
// input stream has been consumed cleanly, so a malformed record mid-stream
// aborts the run with nothing written.
func Run(ctx context.Context, input io.Reader, output io.Writer, logger log.Logger) error {
	if logger == nil {
		logger = log.NewNop()
	}

	processor := engine.NewProcessor(logger)

	if err := processTransactions(ctx, input, processor); err != nil {
		return err
	}

	if err := csvio.WriteAccounts(output, processor.Accounts()); err != nil {
		return fmt.Errorf("write accounts: %w", err)
	}

	return nil
}

// processTransactions replays the full input stream through the processor,
// strictly in delivery order. The first decode failure aborts the run.
func processTransactions(ctx context.Context, input io.Reader, processor *engine.Processor) error {
	reader, err := csvio.NewReader(input)
	if err != nil {
		return fmt.Errorf("read transactions: %w", err)
	}

	for {
		transaction, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("read transactions: %w", err)
		}

		processor.Process(ctx, transaction)
	}
}
