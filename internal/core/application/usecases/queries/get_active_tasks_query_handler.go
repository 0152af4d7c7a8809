package queries

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveTasksQueryHandler reads open tasks from the database.
type GetActiveTasksQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveTasksQueryHandler creates a handler for active task queries.
func NewGetActiveTasksQueryHandler(db *gorm.DB) GetActiveTasksQueryHandler {
	return GetActiveTasksQueryHandler{db: db}
}

// Handle executes the query. Tasks come back highest priority first, oldest
// first within the same priority.
func (h GetActiveTasksQueryHandler) Handle(
	ctx context.Context,
	query GetActiveTasksQuery,
) ([]GetActiveTasksQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			task_type,
			status,
			priority,
			assigned_to,
			total_items,
			completed_items,
			short_items,
			skipped_items
		FROM work_tasks
		WHERE status NOT IN (?, ?)
		ORDER BY priority DESC, created_at
	`, task.StatusCompleted, task.StatusCancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetActiveTasksQueryResponse, 0)
	for rows.Next() {
		var resp GetActiveTasksQueryResponse
		var id uuid.UUID
		var assignedTo uuid.NullUUID

		if err = rows.Scan(&id, &resp.TaskType, &resp.Status, &resp.Priority,
			&assignedTo, &resp.TotalItems, &resp.CompletedItems,
			&resp.ShortItems, &resp.SkippedItems); err != nil {
			return nil, err
		}

		taskID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = taskID

		if assignedTo.Valid {
			userID, idErr := kernel.UUIDFromBytes(assignedTo.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.AssignedTo = &userID
		}

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
