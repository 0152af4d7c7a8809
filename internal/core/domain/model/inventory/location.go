package inventory

import (
	"errors"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/guard"
)

var (
	// ErrLocationIsNotConstructed is returned when a Location was not created
	// through NewLocation or RestoreLocation.
	ErrLocationIsNotConstructed = errors.New("Location must be created via NewLocation constructor")

	// ErrLocationCodeIsRequired is returned when attempting to create a
	// location without a code.
	ErrLocationCodeIsRequired = errs.NewValueIsRequiredError("location code")
)

// Location is a storage position in the warehouse. Its code is the sortable
// pick-path key ("A-01-02" style: aisle, rack, level); sorting task items by
// code approximates minimal operator travel. Non-pickable locations (receiving
// docks, damage quarantine) are skipped by the allocation engine.
type Location struct {
	id                 kernel.UUID
	code               string
	pickable           bool
	needsCycleCount    bool
	cycleCountPriority kernel.Priority

	guard guard.ConstructorGuard
}

// NewLocation creates a pickable location with the given code.
func NewLocation(id kernel.UUID, code string) (*Location, error) {
	loc := &Location{
		pickable: true,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		loc.setID(id),
		loc.setCode(code),
	); err != nil {
		return nil, err
	}

	return loc, nil
}

// RestoreLocation reconstructs a location from persistent storage including
// its pickability and cycle-count flags.
func RestoreLocation(
	id kernel.UUID,
	code string,
	pickable, needsCycleCount bool,
	cycleCountPriority kernel.Priority,
) (*Location, error) {
	loc, err := NewLocation(id, code)
	if err != nil {
		return nil, err
	}

	loc.pickable = pickable
	loc.needsCycleCount = needsCycleCount
	if needsCycleCount {
		if err = cycleCountPriority.Validate(); err != nil {
			return nil, err
		}
		loc.cycleCountPriority = cycleCountPriority
	}

	return loc, nil
}

// Validate ensures the location was created through a constructor.
func (l *Location) Validate() error {
	if l == nil {
		return ErrLocationIsNotConstructed
	}
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// ID returns the location's unique identifier.
func (l *Location) ID() kernel.UUID {
	return l.id
}

// Code returns the sortable pick-path code.
func (l *Location) Code() string {
	return l.code
}

// IsPickable reports whether the allocation engine may reserve stock here.
func (l *Location) IsPickable() bool {
	return l.pickable
}

// NeedsCycleCount reports whether the location is flagged for a cycle count.
func (l *Location) NeedsCycleCount() bool {
	return l.needsCycleCount
}

// CycleCountPriority returns the priority of the pending cycle count, or
// PriorityUnknown when none is flagged.
func (l *Location) CycleCountPriority() kernel.Priority {
	return l.cycleCountPriority
}

// MarkUnpickable excludes the location from allocation.
func (l *Location) MarkUnpickable() {
	l.pickable = false
}

// FlagForCycleCount marks the location for a cycle count at the given
// priority. Flagging an already flagged location is a no-op: repeated short
// picks past the escalation threshold never re-escalate or downgrade.
func (l *Location) FlagForCycleCount(priority kernel.Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	if l.needsCycleCount {
		return nil
	}

	l.needsCycleCount = true
	l.cycleCountPriority = priority
	return nil
}

// ClearCycleCountFlag resets the flag after the count is performed.
func (l *Location) ClearCycleCountFlag() {
	l.needsCycleCount = false
	l.cycleCountPriority = kernel.PriorityUnknown
}

func (l *Location) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Location) setCode(code string) error {
	if code == "" {
		return ErrLocationCodeIsRequired
	}
	l.code = code
	return nil
}
