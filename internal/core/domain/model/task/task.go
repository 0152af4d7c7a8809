package task

import (
	"errors"
	"time"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrTaskIsNotConstructed is returned when a WorkTask was not created
	// through NewWorkTask or RestoreWorkTask.
	ErrTaskIsNotConstructed = errors.New("WorkTask must be created via NewWorkTask constructor")

	// ErrIdempotencyKeyIsRequired is returned when attempting to create a task
	// without an idempotency key.
	ErrIdempotencyKeyIsRequired = errs.NewValueIsRequiredError("idempotency key")

	// ErrTaskHasNoOrders is returned when attempting to create a task over an
	// empty order set.
	ErrTaskHasNoOrders = errs.NewValueIsRequiredError("task orders")

	// ErrBlockReasonIsRequired is returned when blocking a task without a
	// reason.
	ErrBlockReasonIsRequired = errs.NewValueIsRequiredError("block reason")

	// ErrTaskIsNotInProgress is returned when recording item work against a
	// task that is not being worked.
	ErrTaskIsNotInProgress = errors.New("task is not in progress")
)

// ItemCompletionResult tells the caller what a pick confirmation did, so a
// queue worker or interactive endpoint knows whether to continue driving the
// task.
type ItemCompletionResult struct {
	// Complete is true when the full required quantity was confirmed.
	Complete bool

	// Short is true when the operator confirmed less than required.
	Short bool

	// TaskComplete is true when this confirmation closed the task's last open
	// item and the task transitioned to Completed.
	TaskComplete bool
}

// WorkTask groups one type of labor over a set of orders and drives it
// through the status state machine. It owns its TaskItems; progress counters
// are updated by the same aggregate methods that close items, so they can
// never drift from the item states within a committed transaction.
type WorkTask struct {
	id             kernel.UUID
	taskType       Type
	status         Status
	priority       kernel.Priority
	idempotencyKey string
	orderIDs       []kernel.UUID
	assignedTo     *kernel.UUID
	assignedAt     *time.Time
	startedAt      *time.Time
	completedAt    *time.Time
	blockReason    BlockReason

	totalItems      int
	completedItems  int
	shortItems      int
	skippedItems    int
	totalOrders     int
	completedOrders int

	items     []*TaskItem
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewWorkTask creates a pending task for the given orders. Items are attached
// afterwards with AddItem, once the allocation result they derive from is
// known.
func NewWorkTask(
	id kernel.UUID,
	taskType Type,
	priority kernel.Priority,
	idempotencyKey string,
	orderIDs []kernel.UUID,
	createdAt time.Time,
) (*WorkTask, error) {
	t := &WorkTask{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setTaskType(taskType),
		t.setPriority(priority),
		t.setIdempotencyKey(idempotencyKey),
		t.setOrderIDs(orderIDs),
		t.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	t.totalOrders = len(t.orderIDs)

	return t, nil
}

// RestoreWorkTask reconstructs a task with its items and counters from
// persistent storage.
func RestoreWorkTask(
	id kernel.UUID,
	taskType Type,
	status Status,
	priority kernel.Priority,
	idempotencyKey string,
	orderIDs []kernel.UUID,
	assignedTo *kernel.UUID,
	assignedAt, startedAt, completedAt *time.Time,
	blockReason BlockReason,
	completedItems, shortItems, skippedItems, completedOrders int,
	items []*TaskItem,
	createdAt time.Time,
) (*WorkTask, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if status == StatusBlocked {
		if err := blockReason.Validate(); err != nil {
			return nil, err
		}
	}

	t, err := NewWorkTask(id, taskType, priority, idempotencyKey, orderIDs, createdAt)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if err = item.Validate(); err != nil {
			return nil, err
		}
	}

	t.status = status
	t.assignedTo = assignedTo
	t.assignedAt = assignedAt
	t.startedAt = startedAt
	t.completedAt = completedAt
	t.blockReason = blockReason
	t.items = items
	t.totalItems = len(items)
	t.completedItems = completedItems
	t.shortItems = shortItems
	t.skippedItems = skippedItems
	t.completedOrders = completedOrders

	return t, nil
}

// Validate ensures the task was created through a constructor.
func (t *WorkTask) Validate() error {
	if t == nil {
		return ErrTaskIsNotConstructed
	}
	return t.guard.Validate(ErrTaskIsNotConstructed)
}

// ID returns the task's unique identifier.
func (t *WorkTask) ID() kernel.UUID {
	return t.id
}

// TaskType returns the kind of labor the task groups.
func (t *WorkTask) TaskType() Type {
	return t.taskType
}

// Status returns the task's current status.
func (t *WorkTask) Status() Status {
	return t.status
}

// Priority returns the task's urgency tier.
func (t *WorkTask) Priority() kernel.Priority {
	return t.priority
}

// IdempotencyKey returns the caller-supplied creation key. It is unique
// across tasks; re-delivered creation jobs find the existing task by it.
func (t *WorkTask) IdempotencyKey() string {
	return t.idempotencyKey
}

// OrderIDs returns the orders the task works.
func (t *WorkTask) OrderIDs() []kernel.UUID {
	return t.orderIDs
}

// AssignedTo returns the operator holding the task, or nil.
func (t *WorkTask) AssignedTo() *kernel.UUID {
	return t.assignedTo
}

// AssignedAt returns when the task was assigned, or nil.
func (t *WorkTask) AssignedAt() *time.Time {
	return t.assignedAt
}

// StartedAt returns when work began, or nil.
func (t *WorkTask) StartedAt() *time.Time {
	return t.startedAt
}

// CompletedAt returns when the task completed, or nil.
func (t *WorkTask) CompletedAt() *time.Time {
	return t.completedAt
}

// BlockReason returns the recorded obstacle, or BlockReasonUnknown while the
// task is not blocked.
func (t *WorkTask) BlockReason() BlockReason {
	return t.blockReason
}

// TotalItems returns the number of lines on the task.
func (t *WorkTask) TotalItems() int {
	return t.totalItems
}

// CompletedItems returns the number of lines confirmed (full or short).
func (t *WorkTask) CompletedItems() int {
	return t.completedItems
}

// ShortItems returns the number of short confirmations.
func (t *WorkTask) ShortItems() int {
	return t.shortItems
}

// SkippedItems returns the number of skipped lines.
func (t *WorkTask) SkippedItems() int {
	return t.skippedItems
}

// TotalOrders returns the number of orders the task works.
func (t *WorkTask) TotalOrders() int {
	return t.totalOrders
}

// CompletedOrders returns the number of orders fully worked.
func (t *WorkTask) CompletedOrders() int {
	return t.completedOrders
}

// Items returns the task's lines in their current order.
func (t *WorkTask) Items() []*TaskItem {
	return t.items
}

// CreatedAt returns when the task was created.
func (t *WorkTask) CreatedAt() time.Time {
	return t.createdAt
}

// Item finds a line by id.
func (t *WorkTask) Item(itemID kernel.UUID) (*TaskItem, error) {
	for _, item := range t.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("taskItemID", itemID)
}

// HasOpenItems reports whether any line is still Pending or InProgress.
func (t *WorkTask) HasOpenItems() bool {
	for _, item := range t.items {
		if item.IsOpen() {
			return true
		}
	}
	return false
}

// AddItem attaches a line to a pending task.
func (t *WorkTask) AddItem(item *TaskItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if t.status != StatusPending {
		return errs.NewConflictErrorWithCause("task status",
			errors.New("items can only be added to a pending task"))
	}

	t.items = append(t.items, item)
	t.totalItems = len(t.items)
	return nil
}

// Assign hands the task to an operator.
func (t *WorkTask) Assign(userID kernel.UUID, at time.Time) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if err := t.transition(StatusAssigned); err != nil {
		return err
	}

	t.assignedTo = &userID
	t.assignedAt = &at
	return nil
}

// Unassign returns an assigned task to the pending pool.
func (t *WorkTask) Unassign() error {
	if err := t.transition(StatusPending); err != nil {
		return err
	}

	t.assignedTo = nil
	t.assignedAt = nil
	return nil
}

// Start begins work on an assigned task.
func (t *WorkTask) Start(at time.Time) error {
	if err := t.transition(StatusInProgress); err != nil {
		return err
	}

	t.startedAt = &at
	return nil
}

// Block records an obstacle and suspends the task.
func (t *WorkTask) Block(reason BlockReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	if err := t.transition(StatusBlocked); err != nil {
		return err
	}

	t.blockReason = reason
	return nil
}

// Unblock resumes a blocked task and clears the recorded obstacle.
func (t *WorkTask) Unblock() error {
	if t.status != StatusBlocked {
		return errs.NewInvalidTransitionError("task", t.status.String(), StatusInProgress.String())
	}
	if err := t.transition(StatusInProgress); err != nil {
		return err
	}

	t.blockReason = BlockReasonUnknown
	return nil
}

// Pause suspends an in-progress task without an obstacle.
func (t *WorkTask) Pause() error {
	return t.transition(StatusPaused)
}

// Resume continues a paused task.
func (t *WorkTask) Resume() error {
	if t.status != StatusPaused {
		return errs.NewInvalidTransitionError("task", t.status.String(), StatusInProgress.String())
	}
	return t.transition(StatusInProgress)
}

// Cancel abandons the task. Terminal.
func (t *WorkTask) Cancel() error {
	return t.transition(StatusCancelled)
}

// RecordItemCompletion closes one line with the confirmed quantity, updates
// the progress counters, and derives task completion: when no line is left
// open the task transitions to Completed in the same call.
func (t *WorkTask) RecordItemCompletion(
	itemID, userID kernel.UUID,
	actualQty int,
	at time.Time,
) (ItemCompletionResult, error) {
	if t.status != StatusInProgress {
		return ItemCompletionResult{}, errs.NewConflictErrorWithCause("task status", ErrTaskIsNotInProgress)
	}

	item, err := t.Item(itemID)
	if err != nil {
		return ItemCompletionResult{}, err
	}

	short, err := item.Complete(userID, at, actualQty)
	if err != nil {
		return ItemCompletionResult{}, err
	}

	t.completedItems++
	if short {
		t.shortItems++
	}

	result := ItemCompletionResult{Complete: !short, Short: short}
	if !t.HasOpenItems() {
		if err = t.complete(at); err != nil {
			return ItemCompletionResult{}, err
		}
		result.TaskComplete = true
	}

	return result, nil
}

// SkipItem closes one line without picking and reports whether that finished
// the task. The line's reservation stays untouched for manual resolution.
func (t *WorkTask) SkipItem(itemID, userID kernel.UUID, reason string, at time.Time) (taskComplete bool, err error) {
	if t.status != StatusInProgress {
		return false, errs.NewConflictErrorWithCause("task status", ErrTaskIsNotInProgress)
	}

	item, err := t.Item(itemID)
	if err != nil {
		return false, err
	}

	if err = item.Skip(userID, at, reason); err != nil {
		return false, err
	}

	t.skippedItems++
	if !t.HasOpenItems() {
		if err = t.complete(at); err != nil {
			return false, err
		}
		return true, nil
	}

	return false, nil
}

func (t *WorkTask) complete(at time.Time) error {
	if err := t.transition(StatusCompleted); err != nil {
		return err
	}

	t.completedAt = &at
	t.completedOrders = t.totalOrders
	return nil
}

func (t *WorkTask) transition(target Status) error {
	next, err := t.status.TransitionTo(target)
	if err != nil {
		return err
	}
	t.status = next
	return nil
}

func (t *WorkTask) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *WorkTask) setTaskType(taskType Type) error {
	if err := taskType.Validate(); err != nil {
		return err
	}
	t.taskType = taskType
	return nil
}

func (t *WorkTask) setPriority(priority kernel.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	t.priority = priority
	return nil
}

func (t *WorkTask) setIdempotencyKey(key string) error {
	if key == "" {
		return ErrIdempotencyKeyIsRequired
	}
	t.idempotencyKey = key
	return nil
}

func (t *WorkTask) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrTaskHasNoOrders
	}
	for _, orderID := range orderIDs {
		if err := orderID.Validate(); err != nil {
			return err
		}
	}
	t.orderIDs = orderIDs
	return nil
}

func (t *WorkTask) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	t.createdAt = createdAt
	return nil
}
