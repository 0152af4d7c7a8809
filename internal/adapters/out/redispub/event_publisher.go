// Package redispub broadcasts domain events over Redis pub/sub. The real-time
// UI layer subscribes to one channel and fans events out to connected
// operator screens; publication is best-effort and never affects committed
// work.
package redispub

import (
	"context"
	"encoding/json"
	"time"

	"warehouse/internal/core/domain/events"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

// envelope is the wire format of one published event. Payload is the event
// struct itself, so subscribers decode by type tag.
type envelope struct {
	Type          string             `json:"type"`
	Payload       events.DomainEvent `json:"payload"`
	Timestamp     time.Time          `json:"timestamp"`
	CorrelationID string             `json:"correlationId,omitempty"`
}

// RedisEventPublisher implements EventPublisher over a Redis PUBLISH channel.
type RedisEventPublisher struct {
	client  *redis.Client
	channel string
}

// NewRedisEventPublisher creates a publisher writing to the given channel.
func NewRedisEventPublisher(client *redis.Client, channel string) *RedisEventPublisher {
	return &RedisEventPublisher{
		client:  client,
		channel: channel,
	}
}

// Publish serializes the event and publishes it. Failures are logged and
// returned; callers that already committed treat them as non-fatal.
func (p *RedisEventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	body, err := json.Marshal(envelope{
		Type:          event.EventType(),
		Payload:       event,
		Timestamp:     event.OccurredAt(),
		CorrelationID: event.CorrelationID(),
	})
	if err != nil {
		log.Errorf("marshal event %s: %v", event.EventType(), err)
		return err
	}

	if err = p.client.Publish(ctx, p.channel, body).Err(); err != nil {
		log.Errorf("publish event %s: %v", event.EventType(), err)
		return err
	}

	return nil
}
