package main

import (
	"context"
	"os/signal"
)

// notifyContext cancels the batch on the first shutdown signal. Jobs not yet
// started fail with the context error.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
