// Package zap adapts go.uber.org/zap to the engine's log.Logger interface.
package zap
