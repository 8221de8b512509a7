package pricing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anadolusms/smspanel/internal/pricing"
)

func TestFlatStrategy(t *testing.T) {
	s, err := pricing.NewStrategy("flat", 0)
	require.NoError(t, err)
	assert.Equal(t, "flat", s.Name())

	// Charged per submitted recipient, independent of validity and length.
	assert.Equal(t, int64(3), s.RequiredCredits(3, 2, "hello"))
	assert.Equal(t, int64(100000), s.RequiredCredits(100000, 0, strings.Repeat("x", 149)))
	assert.Equal(t, int64(0), s.RequiredCredits(0, 0, ""))
}

func TestDefaultStrategyIsFlat(t *testing.T) {
	s, err := pricing.NewStrategy("", 0)
	require.NoError(t, err)
	assert.Equal(t, "flat", s.Name())
}

func TestSegmentedStrategy(t *testing.T) {
	s, err := pricing.NewStrategy("segmented", 2)
	require.NoError(t, err)
	assert.Equal(t, "segmented", s.Name())

	// 5 submitted, 3 valid, single segment: 3 * 2 * 1.
	assert.Equal(t, int64(6), s.RequiredCredits(5, 3, "short"))

	// 161 characters spill into a second segment: 3 * 2 * 2.
	assert.Equal(t, int64(12), s.RequiredCredits(5, 3, strings.Repeat("a", 161)))

	// Empty text still counts as one segment.
	assert.Equal(t, int64(2), s.RequiredCredits(1, 1, ""))
}

func TestUnknownStrategy(t *testing.T) {
	_, err := pricing.NewStrategy("auction", 1)
	assert.Error(t, err)
}
