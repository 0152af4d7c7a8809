// Package queue consumes fulfillment jobs from RabbitMQ and drives them into
// the command layer. Delivery is at-least-once; every job either carries an
// idempotency key or names an operation that is naturally idempotent, so a
// redelivered message never double-applies.
package queue

import (
	"encoding/json"
	"fmt"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
)

// Job type tags. Stable wire identifiers matched exhaustively by the
// consumer; an unknown tag is a permanent failure.
const (
	JobTypeAllocateOrders       = "allocate_orders"
	JobTypeCreatePickingTask    = "create_picking_task"
	JobTypeRecordItemCompletion = "record_item_completion"
	JobTypeRecordShortPick      = "record_short_pick"
)

// jobEnvelope is the outer wire format of every queue message.
type jobEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AllocateOrdersJob asks for an allocation pass over a set of orders.
type AllocateOrdersJob struct {
	OrderIDs     []string `json:"orderIds"`
	AllowPartial bool     `json:"allowPartial"`
}

// CreatePickingTaskJob asks for a picking task over a set of orders. The
// idempotency key makes redelivery safe.
type CreatePickingTaskJob struct {
	IdempotencyKey string   `json:"idempotencyKey"`
	OrderIDs       []string `json:"orderIds"`
	Priority       string   `json:"priority"`
}

// RecordItemCompletionJob confirms one task line with the counted quantity.
type RecordItemCompletionJob struct {
	TaskItemID string `json:"taskItemId"`
	UserID     string `json:"userId"`
	ActualQty  int    `json:"actualQty"`
}

// RecordShortPickJob records the inventory discrepancy behind a short
// confirmation.
type RecordShortPickJob struct {
	TaskItemID string `json:"taskItemId"`
	UserID     string `json:"userId"`
}

func parseUUIDs(raw []string, paramName string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := kernel.UUIDFromString(s)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(paramName,
				fmt.Errorf("%q: %w", s, err))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parsePriority(raw string) (kernel.Priority, error) {
	switch raw {
	case "Low":
		return kernel.PriorityLow, nil
	case "", "Standard":
		return kernel.PriorityStandard, nil
	case "High":
		return kernel.PriorityHigh, nil
	case "Urgent":
		return kernel.PriorityUrgent, nil
	default:
		return kernel.PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%q is not a known priority", raw))
	}
}
