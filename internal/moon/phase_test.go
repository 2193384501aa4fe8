package moon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Reference instants from published lunar phase tables (UTC). The truncated
// position series is approximate, so assertions stay tolerant.

func TestPhaseAt_FullMoon(t *testing.T) {
	phase := PhaseAt(time.Date(2025, time.November, 5, 13, 19, 0, 0, time.UTC))

	assert.Greater(t, phase.Fraction, 0.95)
	assert.Greater(t, phase.Elongation, 160.0)
	assert.Equal(t, "Full Moon", phase.Name)
}

func TestPhaseAt_NewMoon(t *testing.T) {
	phase := PhaseAt(time.Date(2025, time.November, 20, 6, 47, 0, 0, time.UTC))

	assert.Less(t, phase.Fraction, 0.05)
	assert.Less(t, phase.Elongation, 25.0)
	assert.Equal(t, "New Moon", phase.Name)
}

func TestPhaseAt_FirstQuarter(t *testing.T) {
	phase := PhaseAt(time.Date(2025, time.October, 29, 16, 21, 0, 0, time.UTC))

	assert.InDelta(t, 0.5, phase.Fraction, 0.12)
	assert.True(t, phase.Waxing, "first quarter is a waxing phase")
}

func TestPhaseAt_WaningBetweenFullAndNew(t *testing.T) {
	phase := PhaseAt(time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC))

	assert.False(t, phase.Waxing)
}
