package ports

import (
	"context"
)

// UnitOfWorkFactory creates a new UnitOfWork per command, isolating
// concurrent operations from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Every multi-step operation
// runs inside exactly one of these; an error anywhere rolls the whole
// operation back, so no partial allocation or task mutation is ever visible.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction. Safe to defer after a
	// successful commit.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current
	// transaction.
	OrderRepository() OrderRepository

	// InventoryRepository returns an InventoryRepository bound to the current
	// transaction.
	InventoryRepository() InventoryRepository

	// AllocationRepository returns an AllocationRepository bound to the
	// current transaction.
	AllocationRepository() AllocationRepository

	// TaskRepository returns a TaskRepository bound to the current
	// transaction.
	TaskRepository() TaskRepository

	// BinRepository returns a BinRepository bound to the current transaction.
	BinRepository() BinRepository
}
