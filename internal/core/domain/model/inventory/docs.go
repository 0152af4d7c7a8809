// Package inventory contains the inventory ledger's domain objects: physical
// units of stock at locations, the locations themselves, and discrepancy
// records produced when operators find less than the ledger expects.
//
// The ledger is the single source of truth for free-quantity accounting. Units
// carry no reserved counter; free quantity is always recomputed as unit
// quantity minus the sum of active allocation quantities, inside the same
// transaction that wants to create a new allocation.
package inventory
