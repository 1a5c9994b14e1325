package kafka

import (
	"context"
	"time"

	"github.com/Domenick1991/airbooking-web/internal/session"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, value any) error
}

// Activity records activity events on one topic. Recording is best effort:
// a failed publish is logged and never reaches the caller. A nil *Activity
// records nothing.
type Activity struct {
	producer Publisher
	topic    string
	log      *zap.Logger
	now      func() time.Time
}

func NewActivity(producer Publisher, topic string, log *zap.Logger) *Activity {
	if log == nil {
		log = zap.NewNop()
	}
	return &Activity{producer: producer, topic: topic, log: log, now: time.Now}
}

func (a *Activity) Record(ctx context.Context, ev ActivityEvent) {
	if a == nil || a.producer == nil || a.topic == "" {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = a.now().UTC()
	}
	if err := a.producer.Publish(context.WithoutCancel(ctx), a.topic, ev.Key(), ev); err != nil {
		a.log.Warn("failed to publish activity event",
			zap.String("type", ev.Type),
			zap.String("session_id", ev.SessionID),
			zap.Error(err),
		)
	}
}

// OnSessionEnd is a session listener recording a logout event for every
// session that ends, including those cleared after the backend rejected
// the token.
func (a *Activity) OnSessionEnd(ctx context.Context, ev session.Event) {
	if ev.Kind != session.EventLogout || ev.User == nil {
		return
	}
	a.Record(ctx, ActivityEvent{Type: EventLogout, SessionID: ev.SessionID, UserID: ev.User.ID, Email: ev.User.Email})
}
