package kernel

import (
	"fmt"

	"warehouse/internal/pkg/errs"
)

// Priority is a value object representing the urgency tier shared by orders
// and work tasks. Higher tiers are worked first by pickers and by the
// backorder reallocation job.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow is used for orders with relaxed shipping commitments.
	PriorityLow

	// PriorityStandard is the default tier for regular orders.
	PriorityStandard

	// PriorityHigh marks orders that should jump ahead of standard work,
	// including locations flagged for priority cycle counts.
	PriorityHigh

	// PriorityUrgent marks same-day and expedited work.
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown:  "Unknown",
		PriorityLow:      "Low",
		PriorityStandard: "Standard",
		PriorityHigh:     "High",
		PriorityUrgent:   "Urgent",
	}
}

// Validate checks the priority is one of the defined tiers.
// PriorityUnknown (0) and out-of-range values are invalid.
func (p Priority) Validate() error {
	if p < PriorityLow || p > PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the human-readable name of the priority tier.
func (p Priority) String() string {
	if s, ok := getPriorityStrings()[p]; ok {
		return s
	}
	return "Unknown"
}
