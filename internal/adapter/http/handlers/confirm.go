package handlers

import (
	"context"

	"planloop/internal/core/ports"
)

type confirmDecisionKey struct{}

// withConfirmDecision records the caller's answer to any confirmation
// the orchestrator may raise during this request. An HTTP round-trip
// cannot block on a dialog, so the UI sends its answer up front.
func withConfirmDecision(ctx context.Context, approved bool) context.Context {
	return context.WithValue(ctx, confirmDecisionKey{}, approved)
}

// RequestConfirmer satisfies ports.Confirmer from the request context.
// A request carrying no decision declines, so destructive propagation
// never happens by default.
func RequestConfirmer() ports.Confirmer {
	return ports.ConfirmerFunc(func(ctx context.Context, _ string) (bool, error) {
		if approved, ok := ctx.Value(confirmDecisionKey{}).(bool); ok {
			return approved, nil
		}
		return false, nil
	})
}
