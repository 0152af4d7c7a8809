// Package events defines the structured domain events emitted after state
// transitions commit. They are best-effort fanout for real-time UI updates,
// published outside the transaction that produced them.
package events
