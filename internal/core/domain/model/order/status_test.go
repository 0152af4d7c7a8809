package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/pkg/errs"
)

var allStatuses = []order.Status{
	order.Pending,
	order.Confirmed,
	order.OnHold,
	order.Backordered,
	order.PartiallyAllocated,
	order.Allocated,
	order.Picking,
	order.Picked,
	order.Packed,
	order.Shipped,
	order.Cancelled,
}

var legalTransitions = map[order.Status][]order.Status{
	order.Pending:            {order.Confirmed, order.OnHold, order.Backordered, order.PartiallyAllocated, order.Allocated, order.Cancelled},
	order.Confirmed:          {order.OnHold, order.Backordered, order.PartiallyAllocated, order.Allocated, order.Cancelled},
	order.OnHold:             {order.Pending, order.Backordered, order.PartiallyAllocated, order.Allocated, order.Cancelled},
	order.Backordered:        {order.OnHold, order.PartiallyAllocated, order.Allocated, order.Cancelled},
	order.PartiallyAllocated: {order.OnHold, order.Backordered, order.Allocated, order.Picking, order.Cancelled},
	order.Allocated:          {order.Backordered, order.PartiallyAllocated, order.Picking, order.Cancelled},
	order.Picking:            {order.Picked, order.Cancelled},
	order.Picked:             {order.Packed, order.Cancelled},
	order.Packed:             {order.Shipped, order.Cancelled},
	order.Shipped:            {},
	order.Cancelled:          {},
}

func isLegal(from, to order.Status) bool {
	// a same-status move is a no-op everywhere except in terminal states
	if from == to {
		return !from.IsTerminal()
	}
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Every (from, to) pair outside the transition table must be rejected with an
// error naming both states; terminal statuses accept nothing.
func Test_Status_TransitionClosure(t *testing.T) {
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := isLegal(from, to)

			assert.Equal(t, want, from.CanTransitionTo(to), "transition %s -> %s", from, to)

			next, err := from.TransitionTo(to)
			if want {
				assert.NoError(t, err)
				assert.Equal(t, to, next)
				continue
			}

			assert.ErrorIs(t, err, errs.ErrInvalidTransition, "transition %s -> %s", from, to)
			assert.Contains(t, err.Error(), from.String())
			assert.Contains(t, err.Error(), to.String())
		}
	}
}

func Test_Status_Terminal(t *testing.T) {
	assert.True(t, order.Shipped.IsTerminal())
	assert.True(t, order.Cancelled.IsTerminal())

	for _, s := range allStatuses {
		if s == order.Shipped || s == order.Cancelled {
			continue
		}
		assert.False(t, s.IsTerminal(), "%s must not be terminal", s)
	}
}

func Test_Status_IsAllocatable(t *testing.T) {
	allocatable := map[order.Status]bool{
		order.Pending:            true,
		order.Confirmed:          true,
		order.Backordered:        true,
		order.PartiallyAllocated: true,
	}

	for _, s := range allStatuses {
		assert.Equal(t, allocatable[s], s.IsAllocatable(), "%s", s)
	}
}

func Test_Status_Validate(t *testing.T) {
	for _, s := range allStatuses {
		assert.NoError(t, s.Validate())
	}

	assert.Error(t, order.Unknown.Validate())
	assert.Error(t, order.Status(42).Validate())
}
