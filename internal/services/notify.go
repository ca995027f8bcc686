package services

import (
	"context"

	"mun-chits/internal/domain/user"
	"mun-chits/internal/events"
	"mun-chits/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// pushAll notifies each recipient once. Delivery is best effort: failures
// are logged and never returned.
func pushAll(ctx context.Context, n events.Notifier, log *logger.Logger, recipients []uuid.UUID, event string, payload interface{}) {
	if n == nil {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(recipients))
	for _, id := range recipients {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if err := n.Notify(ctx, id, event, payload); err != nil {
			log.Warn(ctx, "realtime push failed",
				zap.String("event", event),
				zap.String("recipient_id", id.String()),
				zap.Error(err),
			)
		}
	}
}

func userIDs(users []user.User) []uuid.UUID {
	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
