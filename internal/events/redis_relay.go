package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StreamRelay forwards every dispatched event onto a redis stream so external
// consumers (dashboards, notifiers) can tail the work-item activity.
type StreamRelay struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewStreamRelay builds the relay.
func NewStreamRelay(client *redis.Client, stream string, logger *zap.Logger) *StreamRelay {
	return &StreamRelay{client: client, stream: stream, logger: logger}
}

// Register subscribes the relay to every event type.
func (r *StreamRelay) Register(dispatcher Dispatcher) {
	if r == nil || r.client == nil || dispatcher == nil {
		return
	}
	for _, eventType := range []EventType{
		EventWorkItemCreated,
		EventWorkItemStatusChanged,
		EventWorkItemDeleted,
		EventPropagationApplied,
		EventPropagationFailed,
	} {
		dispatcher.Subscribe(eventType, r.relay)
	}
}

func (r *StreamRelay) relay(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		r.logger.Warn("event relay marshal failed", zap.Error(err))
		return err
	}
	err = r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]interface{}{
			"type":  string(event.Type),
			"event": payload,
		},
	}).Err()
	if err != nil {
		r.logger.Warn("event relay publish failed",
			zap.String("stream", r.stream),
			zap.String("event_id", event.ID),
			zap.Error(err))
	}
	return err
}
