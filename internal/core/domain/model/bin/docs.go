// Package bin contains the pick bin aggregate: the physical container that
// consolidates a completed picking task's output, one line per product
// variant, on its way to the pack station.
package bin
