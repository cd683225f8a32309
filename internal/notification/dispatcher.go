package notification

import "github.com/rs/zerolog/log"

// Publisher accepts domain events from lifecycle operations. Implementations
// must not fail the caller: events are published after the primary write has
// committed, and a lost notification must not reverse it.
type Publisher interface {
	Publish(events ...Event)
}

// Dispatcher translates domain events into notification rows.
type Dispatcher struct {
	repo NotificationRepository
}

// NewDispatcher creates a new event dispatcher.
func NewDispatcher(repo NotificationRepository) *Dispatcher {
	return &Dispatcher{repo: repo}
}

// Publish creates one notification per event. Failures are logged and
// swallowed; the triggering mutation has already committed.
func (d *Dispatcher) Publish(events ...Event) {
	for _, e := range events {
		n := Notification{
			UserID:  e.UserID,
			Type:    e.Type,
			Payload: e.Payload,
		}
		if err := d.repo.Create(&n); err != nil {
			log.Error().
				Err(err).
				Uint("user_id", e.UserID).
				Str("type", e.Type).
				Msg("failed to create notification")
		}
	}
}
