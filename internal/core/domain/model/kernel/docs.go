// Package kernel contains shared value objects used across all domain
// aggregates. The kernel has no dependencies on other domain packages and
// changes rarely; aggregates build their identity and common invariants on top
// of it.
package kernel
