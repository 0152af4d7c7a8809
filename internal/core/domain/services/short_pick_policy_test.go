package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/services"
)

func Test_ShortPickPolicy_BelowThreshold(t *testing.T) {
	loc, err := inventory.NewLocation(kernel.NewUUID(), "A-05-01")
	require.NoError(t, err)

	for count := 1; count < services.ShortPickThreshold; count++ {
		flagged, err := services.NewShortPickPolicy().Apply(loc, count)
		require.NoError(t, err)
		assert.False(t, flagged, "count %d must not flag", count)
	}

	assert.False(t, loc.NeedsCycleCount())
}

func Test_ShortPickPolicy_ThresholdFlagsHighPriority(t *testing.T) {
	loc, err := inventory.NewLocation(kernel.NewUUID(), "A-05-01")
	require.NoError(t, err)

	flagged, err := services.NewShortPickPolicy().Apply(loc, 3)

	require.NoError(t, err)
	assert.True(t, flagged)
	assert.True(t, loc.NeedsCycleCount())
	assert.Equal(t, kernel.PriorityHigh, loc.CycleCountPriority())
}

// A fourth short pick past the threshold must leave the existing flag
// untouched.
func Test_ShortPickPolicy_EscalationIsIdempotent(t *testing.T) {
	loc, err := inventory.NewLocation(kernel.NewUUID(), "A-05-01")
	require.NoError(t, err)

	policy := services.NewShortPickPolicy()
	_, err = policy.Apply(loc, 3)
	require.NoError(t, err)

	flagged, err := policy.Apply(loc, 4)

	require.NoError(t, err)
	assert.True(t, flagged)
	assert.True(t, loc.NeedsCycleCount())
	assert.Equal(t, kernel.PriorityHigh, loc.CycleCountPriority())
}
