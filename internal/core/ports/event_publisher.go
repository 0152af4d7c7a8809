package ports

import (
	"context"

	"warehouse/internal/core/domain/events"
)

// EventPublisher broadcasts domain events to the real-time UI layer. Handlers
// call it strictly after their transaction commits; publication is
// best-effort and a failure never rolls back committed work.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}
