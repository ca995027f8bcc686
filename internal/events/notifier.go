package events

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks

// Notifier pushes a named event to every live connection of a user. A user
// without connections is skipped silently.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, event string, payload interface{}) error
}

// Deliverer hands an encoded frame to the connections held by this process.
// It reports whether at least one connection received it.
type Deliverer interface {
	SendToUser(userID uuid.UUID, frame []byte) bool
}

// LocalNotifier delivers straight to the in-process connection registry.
type LocalNotifier struct {
	deliverer Deliverer
}

func NewLocalNotifier(d Deliverer) *LocalNotifier {
	return &LocalNotifier{deliverer: d}
}

func (n *LocalNotifier) Notify(ctx context.Context, userID uuid.UUID, event string, payload interface{}) error {
	env, err := NewEnvelope(event, payload)
	if err != nil {
		return err
	}
	frame, err := env.Bytes()
	if err != nil {
		return err
	}
	n.deliverer.SendToUser(userID, frame)
	return nil
}
