package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/pkg/guard"
)

var ErrGetActiveTasksQueryIsNotConstructed = errors.New(
	"GetActiveTasksQuery must be created via NewGetActiveTasksQuery constructor",
)

// GetActiveTasksQuery retrieves every work task that has not reached a
// terminal state, highest priority first. Supervisors use it as the floor
// overview.
type GetActiveTasksQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveTasksQuery creates a new active tasks query.
func NewGetActiveTasksQuery() GetActiveTasksQuery {
	return GetActiveTasksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveTasksQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveTasksQueryIsNotConstructed)
}

// GetActiveTasksQueryResponse is one open task with its progress counters.
type GetActiveTasksQueryResponse struct {
	ID             kernel.UUID
	TaskType       task.Type
	Status         task.Status
	Priority       kernel.Priority
	AssignedTo     *kernel.UUID
	TotalItems     int
	CompletedItems int
	ShortItems     int
	SkippedItems   int
}
