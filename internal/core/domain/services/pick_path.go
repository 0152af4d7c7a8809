package services

import (
	"sort"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/task"
	"warehouse/internal/pkg/errs"
)

// PickPathSequencer orders task items so the operator walks the warehouse
// once. Items are grouped by location code (codes sort by aisle, rack, level)
// and the assigned sequence number is the authoritative pick order for the
// operator UI.
type PickPathSequencer interface {
	Sequence(items []*task.TaskItem, locationCodes map[kernel.UUID]string) error
}

var _ PickPathSequencer = &pickPathSequencer{}

type pickPathSequencer struct{}

// NewPickPathSequencer creates the pick-path sequencing service.
func NewPickPathSequencer() PickPathSequencer {
	return &pickPathSequencer{}
}

// Sequence sorts items by their location code (ties broken by variant id for
// determinism) and assigns 1-based sequence numbers in place. Every item's
// location must have a code in locationCodes.
func (s *pickPathSequencer) Sequence(items []*task.TaskItem, locationCodes map[kernel.UUID]string) error {
	for _, item := range items {
		if _, ok := locationCodes[item.LocationID()]; !ok {
			return errs.NewObjectNotFoundError("locationID", item.LocationID())
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		ci := locationCodes[items[i].LocationID()]
		cj := locationCodes[items[j].LocationID()]
		if ci != cj {
			return ci < cj
		}
		return items[i].VariantID().String() < items[j].VariantID().String()
	})

	for n, item := range items {
		if err := item.AssignSequence(n + 1); err != nil {
			return err
		}
	}

	return nil
}
