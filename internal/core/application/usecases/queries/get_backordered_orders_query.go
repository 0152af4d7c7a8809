// Package queries contains the read-side operations. Query handlers bypass
// the aggregates and read projections straight from the database.
package queries

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/guard"
)

var ErrGetBackorderedOrdersQueryIsNotConstructed = errors.New(
	"GetBackorderedOrdersQuery must be created via NewGetBackorderedOrdersQuery constructor",
)

// GetBackorderedOrdersQuery retrieves orders waiting on stock, oldest first.
// An optional variant filter narrows the list to orders that would benefit
// from a specific replenishment.
type GetBackorderedOrdersQuery struct {
	variantID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetBackorderedOrdersQuery creates a query for all backordered orders.
func NewGetBackorderedOrdersQuery() GetBackorderedOrdersQuery {
	return GetBackorderedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// NewGetBackorderedOrdersByVariantQuery creates a query for backordered
// orders with a line referencing the given variant.
func NewGetBackorderedOrdersByVariantQuery(variantID kernel.UUID) (GetBackorderedOrdersQuery, error) {
	if err := variantID.Validate(); err != nil {
		return GetBackorderedOrdersQuery{}, err
	}

	return GetBackorderedOrdersQuery{
		variantID: &variantID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// VariantID returns the variant filter, or nil for the unfiltered query.
func (q GetBackorderedOrdersQuery) VariantID() *kernel.UUID {
	return q.variantID
}

// Validate ensures the query was created through a constructor.
func (q GetBackorderedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBackorderedOrdersQueryIsNotConstructed)
}

// GetBackorderedOrdersQueryResponse is one waiting order with how much
// quantity it still lacks.
type GetBackorderedOrdersQueryResponse struct {
	ID             kernel.UUID
	OrderNumber    string
	Status         order.Status
	BackorderedQty int
}
