// Package allocation contains the stock reservation entity linking order
// items to inventory units. Allocations are the only record of reservation in
// the system: inventory units carry no reserved counter, and a unit's free
// quantity is recomputed as its total quantity minus the sum of quantities of
// its active allocations, inside every transaction that wants to reserve
// more. Picked allocations stay in that sum so consumed stock never returns
// to the free pool.
package allocation
