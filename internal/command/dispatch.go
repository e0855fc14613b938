package command

import (
	"context"

	"go.uber.org/zap"

	"projecthub/internal/event"
)

// emit publishes an event after a successful save. Dispatch is
// fire-and-forget: a failure is logged and never surfaced to the caller.
func emit(ctx context.Context, d event.Dispatcher, logger *zap.Logger, e event.Event) {
	if err := d.Dispatch(ctx, e); err != nil {
		logger.Warn("Event dispatch failed",
			zap.Error(err),
			zap.String("event_type", e.EventType()),
		)
	}
}
