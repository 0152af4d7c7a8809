package services

import (
	"time"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
)

const (
	// ShortPickThreshold is how many short picks at one location trigger a
	// cycle count.
	ShortPickThreshold = 3

	// ShortPickWindow is the rolling window the threshold is counted over.
	ShortPickWindow = 7 * 24 * time.Hour
)

// ShortPickPolicy escalates repeated short picks at one location into a
// priority cycle count: three shorts within a rolling seven-day window flag
// the location at high priority. The escalation is idempotent; further shorts
// leave the flag untouched.
type ShortPickPolicy interface {
	// WindowStart returns the cutoff for counting recent shorts.
	WindowStart(now time.Time) time.Time

	// Apply flags the location when recentShortCount (including the short
	// being recorded) reaches the threshold. It reports whether the location
	// now carries the flag.
	Apply(loc *inventory.Location, recentShortCount int) (flagged bool, err error)
}

var _ ShortPickPolicy = &shortPickPolicy{}

type shortPickPolicy struct{}

// NewShortPickPolicy creates the short-pick escalation service.
func NewShortPickPolicy() ShortPickPolicy {
	return &shortPickPolicy{}
}

func (p *shortPickPolicy) WindowStart(now time.Time) time.Time {
	return now.Add(-ShortPickWindow)
}

func (p *shortPickPolicy) Apply(loc *inventory.Location, recentShortCount int) (bool, error) {
	if err := loc.Validate(); err != nil {
		return false, err
	}

	if recentShortCount < ShortPickThreshold {
		return loc.NeedsCycleCount(), nil
	}

	if err := loc.FlagForCycleCount(kernel.PriorityHigh); err != nil {
		return false, err
	}
	return true, nil
}
