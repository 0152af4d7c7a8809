package queries

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBackorderedOrdersQueryHandler reads the backorder queue from the
// database. Oldest orders come first, so replenished stock reaches the
// longest-waiting customers.
type GetBackorderedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBackorderedOrdersQueryHandler creates a handler for backorder queue
// queries.
func NewGetBackorderedOrdersQueryHandler(db *gorm.DB) GetBackorderedOrdersQueryHandler {
	return GetBackorderedOrdersQueryHandler{db: db}
}

// Handle executes the query. The lacking quantity is summed over the order's
// lines as required minus allocated.
func (h GetBackorderedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBackorderedOrdersQuery,
) ([]GetBackorderedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			o.id,
			o.order_number,
			o.status,
			COALESCE(SUM(i.required_qty - i.allocated_qty), 0)
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE o.status IN (?, ?)
	`
	args := []any{order.Backordered, order.PartiallyAllocated}

	if query.VariantID() != nil {
		sql += `
		AND o.id IN (SELECT order_id FROM order_items WHERE variant_id = ?)
		`
		args = append(args, query.VariantID().Bytes())
	}

	sql += `
		GROUP BY o.id, o.order_number, o.status, o.created_at
		ORDER BY o.created_at
	`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]GetBackorderedOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetBackorderedOrdersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &resp.OrderNumber, &resp.Status, &resp.BackorderedQty); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		responses = append(responses, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}
