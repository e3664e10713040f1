// Package log defines the structured logging interface and typed logging
// fields used across the engine.
//
// Adapters (such as the zap package) implement Logger so the engine can keep
// logging calls consistent across backends.
package log
