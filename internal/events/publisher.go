package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"drivehub-backend/internal/logger"
)

// ChannelBookings is the pub/sub channel realtime subscribers listen on.
const ChannelBookings = "drivehub:bookings"

// Publisher broadcasts lifecycle events over redis pub/sub. Delivery is
// fire-and-forget: it is invoked after the store commit and is not part
// of the transactional guarantee.
type Publisher struct {
	rdb      *redis.Client
	producer string
}

func NewPublisher(rdb *redis.Client, producer string) *Publisher {
	return &Publisher{rdb: rdb, producer: producer}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	env := Envelope{
		EventID:      uuid.NewString(),
		EventType:    eventType,
		EventVersion: 1,
		OccurredAt:   time.Now().UTC(),
		Producer:     p.producer,
		Payload:      raw,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, ChannelBookings, data).Err(); err != nil {
		logger.Warn("event publish failed", "event_type", eventType, "error", err)
		return err
	}
	return nil
}
