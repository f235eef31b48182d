// Package notify delivers human-readable event descriptions to an external
// sink. Delivery is best-effort: failures are logged and swallowed, never
// surfaced to the ledger.
package notify

import "context"

// Notifier is the sink interface injected into the ledger's collaborators.
type Notifier interface {
	Notify(ctx context.Context, text string)
}

// Noop discards every notification.
type Noop struct{}

func (Noop) Notify(context.Context, string) {}
