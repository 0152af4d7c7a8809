package events

import (
	"time"
)

// DomainEvent is a state change worth broadcasting to the real-time UI layer.
// Type tags are stable wire identifiers; payloads carry plain string ids so
// subscribers need no domain types to decode them.
type DomainEvent interface {
	// EventType returns the stable type tag, e.g. "task.created".
	EventType() string

	// OccurredAt returns when the change happened.
	OccurredAt() time.Time

	// CorrelationID links the event to the operation that caused it, or is
	// empty when the caller supplied none.
	CorrelationID() string
}

// Occurrence carries the metadata every event shares. Embed it and set the
// fields at construction.
type Occurrence struct {
	At          time.Time `json:"occurredAt"`
	Correlation string    `json:"correlationId,omitempty"`
}

// OccurredAt returns when the change happened.
func (o Occurrence) OccurredAt() time.Time {
	return o.At
}

// CorrelationID returns the operation correlation id, possibly empty.
func (o Occurrence) CorrelationID() string {
	return o.Correlation
}

// TaskCreated signals a new work task with its lines materialized.
type TaskCreated struct {
	Occurrence
	TaskID     string   `json:"taskId"`
	TaskType   string   `json:"taskType"`
	Priority   string   `json:"priority"`
	OrderIDs   []string `json:"orderIds"`
	TotalItems int      `json:"totalItems"`
}

func (TaskCreated) EventType() string { return "task.created" }

// TaskAssigned signals an operator took a task.
type TaskAssigned struct {
	Occurrence
	TaskID string `json:"taskId"`
	UserID string `json:"userId"`
}

func (TaskAssigned) EventType() string { return "task.assigned" }

// TaskStarted signals work began on a task.
type TaskStarted struct {
	Occurrence
	TaskID string `json:"taskId"`
}

func (TaskStarted) EventType() string { return "task.started" }

// TaskBlocked signals a task hit an obstacle.
type TaskBlocked struct {
	Occurrence
	TaskID string `json:"taskId"`
	Reason string `json:"reason"`
}

func (TaskBlocked) EventType() string { return "task.blocked" }

// TaskUnblocked signals a blocked task resumed.
type TaskUnblocked struct {
	Occurrence
	TaskID string `json:"taskId"`
}

func (TaskUnblocked) EventType() string { return "task.unblocked" }

// TaskCompleted signals every line of a task reached a closed state.
type TaskCompleted struct {
	Occurrence
	TaskID         string `json:"taskId"`
	CompletedItems int    `json:"completedItems"`
	ShortItems     int    `json:"shortItems"`
	SkippedItems   int    `json:"skippedItems"`
}

func (TaskCompleted) EventType() string { return "task.completed" }

// TaskPaused signals work on a task was suspended without an obstacle.
type TaskPaused struct {
	Occurrence
	TaskID string `json:"taskId"`
}

func (TaskPaused) EventType() string { return "task.paused" }

// TaskResumed signals a paused task continued.
type TaskResumed struct {
	Occurrence
	TaskID string `json:"taskId"`
}

func (TaskResumed) EventType() string { return "task.resumed" }

// TaskCancelled signals a task was abandoned.
type TaskCancelled struct {
	Occurrence
	TaskID string `json:"taskId"`
}

func (TaskCancelled) EventType() string { return "task.cancelled" }

// ItemCompleted signals a full-quantity pick confirmation.
type ItemCompleted struct {
	Occurrence
	TaskID     string `json:"taskId"`
	TaskItemID string `json:"taskItemId"`
	UserID     string `json:"userId"`
	Quantity   int    `json:"quantity"`
}

func (ItemCompleted) EventType() string { return "task.item.completed" }

// ItemShort signals a pick confirmation below the required quantity.
type ItemShort struct {
	Occurrence
	TaskID      string `json:"taskId"`
	TaskItemID  string `json:"taskItemId"`
	UserID      string `json:"userId"`
	RequiredQty int    `json:"requiredQty"`
	ActualQty   int    `json:"actualQty"`
}

func (ItemShort) EventType() string { return "task.item.short" }

// ItemSkipped signals an operator passed a line over.
type ItemSkipped struct {
	Occurrence
	TaskID     string `json:"taskId"`
	TaskItemID string `json:"taskItemId"`
	UserID     string `json:"userId"`
	Reason     string `json:"reason"`
}

func (ItemSkipped) EventType() string { return "task.item.skipped" }

// ShortPickDetected signals a recorded inventory discrepancy, with the
// cycle-count escalation outcome.
type ShortPickDetected struct {
	Occurrence
	DiscrepancyID  string `json:"discrepancyId"`
	VariantID      string `json:"variantId"`
	LocationID     string `json:"locationId"`
	Variance       int    `json:"variance"`
	CycleCountSet  bool   `json:"cycleCountSet"`
	RecentShortCnt int    `json:"recentShortCount"`
}

func (ShortPickDetected) EventType() string { return "inventory.short_pick_detected" }

// PickBinCreated signals a bin was staged from a completed picking task.
type PickBinCreated struct {
	Occurrence
	BinID     string `json:"binId"`
	TaskID    string `json:"taskId"`
	BinNumber int    `json:"binNumber"`
	Barcode   string `json:"barcode"`
	ItemCount int    `json:"itemCount"`
}

func (PickBinCreated) EventType() string { return "bin.created" }

// BinItemVerified signals a pack-station scan against a bin line.
type BinItemVerified struct {
	Occurrence
	BinID       string `json:"binId"`
	VariantID   string `json:"variantId"`
	VerifiedQty int    `json:"verifiedQty"`
	Quantity    int    `json:"quantity"`
}

func (BinItemVerified) EventType() string { return "bin.item_verified" }

// PickBinCompleted signals every bin line was fully verified.
type PickBinCompleted struct {
	Occurrence
	BinID string `json:"binId"`
}

func (PickBinCompleted) EventType() string { return "bin.completed" }

// PickBinCancelled signals a bin was withdrawn before completion.
type PickBinCancelled struct {
	Occurrence
	BinID string `json:"binId"`
}

func (PickBinCancelled) EventType() string { return "bin.cancelled" }
