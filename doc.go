// Package payments wires the payments engine together: it reads a CSV
// transaction stream, replays it through the engine, and writes the final
// account listing as CSV.
//
// Typical usage at process entry:
//
//	if err := payments.Run(ctx, input, os.Stdout, logger); err != nil {
//		// abort: nothing has been written to output
//	}
//
// The core state machine lives in the engine subpackage; specialized
// collaborators live in subpackages such as csvio, log, and zap.
package payments
