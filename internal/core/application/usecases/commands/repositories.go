// Package commands contains the business operations that modify system
// state. Every handler follows the same shape: validate the command, open a
// unit of work, run the domain logic, commit, and only then publish events.
package commands

import (
	"context"

	"warehouse/internal/core/domain/events"
	"warehouse/internal/core/ports"
)

// Unit of Work interfaces give each handler the narrowest transaction scope
// it needs, so tests can mock exactly the repositories a command touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a
	// transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// InventoryRepoFactory provides access to the inventory ledger within a
	// transaction.
	InventoryRepoFactory interface {
		InventoryRepository() ports.InventoryRepository
	}

	// AllocationRepoFactory provides access to the allocation ledger within a
	// transaction.
	AllocationRepoFactory interface {
		AllocationRepository() ports.AllocationRepository
	}

	// TaskRepoFactory provides access to the task repository within a
	// transaction.
	TaskRepoFactory interface {
		TaskRepository() ports.TaskRepository
	}

	// BinRepoFactory provides access to the bin repository within a
	// transaction.
	BinRepoFactory interface {
		BinRepository() ports.BinRepository
	}

	// AllocationUoW manages transactions for allocation passes: the order,
	// the inventory it reads, and the reservations it writes.
	AllocationUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
	}

	// AllocationUoWFactory creates allocation unit of work instances.
	AllocationUoWFactory interface {
		Create() AllocationUoW
	}

	// TaskUoW manages transactions for task-only lifecycle operations.
	TaskUoW interface {
		TxManager
		TaskRepoFactory
	}

	// TaskUoWFactory creates task unit of work instances.
	TaskUoWFactory interface {
		Create() TaskUoW
	}

	// PickingUoW manages transactions for the orchestration operations that
	// span orders, inventory, allocations, and tasks: task creation and pick
	// confirmation.
	PickingUoW interface {
		TxManager
		OrderRepoFactory
		InventoryRepoFactory
		AllocationRepoFactory
		TaskRepoFactory
	}

	// PickingUoWFactory creates picking unit of work instances.
	PickingUoWFactory interface {
		Create() PickingUoW
	}

	// ShortPickUoW manages transactions for short-pick side effects: the
	// discrepancy record and the location flag.
	ShortPickUoW interface {
		TxManager
		InventoryRepoFactory
		TaskRepoFactory
	}

	// ShortPickUoWFactory creates short-pick unit of work instances.
	ShortPickUoWFactory interface {
		Create() ShortPickUoW
	}

	// BinUoW manages transactions for pick bin consolidation and
	// verification.
	BinUoW interface {
		TxManager
		TaskRepoFactory
		BinRepoFactory
	}

	// BinUoWFactory creates bin unit of work instances.
	BinUoWFactory interface {
		Create() BinUoW
	}
)

// publishEvents broadcasts events after a successful commit. Publication is
// best-effort fanout for the UI; failures are swallowed here and logged by
// the publisher itself, never failing the committed operation.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, evts ...events.DomainEvent) {
	if publisher == nil {
		return
	}
	for _, e := range evts {
		_ = publisher.Publish(ctx, e)
	}
}
