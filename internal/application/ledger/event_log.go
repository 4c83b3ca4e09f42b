package ledger

import (
	"github.com/cobranza/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// logDomainEvents emits the events an aggregate accumulated during a committed
// operation to the structured log and clears them. Called only after the
// surrounding transaction has committed; a rolled-back aggregate is discarded
// with its events.
func logDomainEvents(log *zap.Logger, root shared.AggregateRoot) {
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	for _, event := range events {
		log.Info("domain event",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
	root.ClearDomainEvents()
}
