package diode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThermalVoltage(t *testing.T) {
	assert.InDelta(t, 0.025701944444444444, DefaultPhysics.ThermalVoltage(), 1e-15)
}

func TestOpenCircuitVoltage(t *testing.T) {
	voc, err := OpenCircuitVoltage(DefaultPhysics, 5, 6e-11)
	require.NoError(t, err)
	assert.InDelta(t, 0.6463040370026936, voc, 1e-12)

	voc, err = OpenCircuitVoltage(DefaultPhysics, 6, 5e-11)
	require.NoError(t, err)
	assert.InDelta(t, 0.655676074050085, voc, 1e-12)
}

func TestOpenCircuitVoltage_Positive(t *testing.T) {
	for _, isc := range []float64{1e-3, 0.5, 1, 5, 9.5} {
		for _, io := range []float64{1e-12, 1e-11, 1e-10, 1e-9} {
			voc, err := OpenCircuitVoltage(DefaultPhysics, isc, io)
			require.NoError(t, err)
			assert.Greater(t, voc, 0.0, "isc=%v io=%v", isc, io)
		}
	}
}

func TestOpenCircuitVoltage_Monotonic(t *testing.T) {
	prev := 0.0
	for _, isc := range []float64{1, 2, 3, 4, 5, 6} {
		voc, err := OpenCircuitVoltage(DefaultPhysics, isc, 5e-11)
		require.NoError(t, err)
		assert.Greater(t, voc, prev, "voc must increase with isc")
		prev = voc
	}

	prev = math.Inf(1)
	for _, io := range []float64{1e-11, 5e-11, 1e-10, 5e-10, 1e-9} {
		voc, err := OpenCircuitVoltage(DefaultPhysics, 5, io)
		require.NoError(t, err)
		assert.Less(t, voc, prev, "voc must decrease with io")
		prev = voc
	}
}

func TestOpenCircuitVoltage_Domain(t *testing.T) {
	_, err := OpenCircuitVoltage(DefaultPhysics, -2, 1)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = OpenCircuitVoltage(DefaultPhysics, -1, 1)
	assert.ErrorIs(t, err, ErrDomain)

	_, err = OpenCircuitVoltage(DefaultPhysics, math.NaN(), 1)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestCurrent(t *testing.T) {
	// at short circuit the diode and shunt terms vanish
	assert.Equal(t, 5.0, Current(DefaultPhysics, 5, 6e-11, 0, 10))

	want := 5 - 6e-11*(math.Exp(38.9*0.5)-1) - 0.5/10
	assert.InDelta(t, want, Current(DefaultPhysics, 5, 6e-11, 0.5, 10), 1e-12)
}

func TestTerminalVoltage(t *testing.T) {
	assert.InDelta(t, 0.5-4.8*0.001, TerminalVoltage(0.5, 4.8, 0.001), 1e-15)
	assert.Equal(t, 0.5, TerminalVoltage(0.5, 4.8, 0))
}

func TestPower(t *testing.T) {
	assert.Equal(t, 2.5, Power(0.5, 5))
}

func TestTerminalVoltage_Reproducible(t *testing.T) {
	first := TerminalVoltage(0.55, Current(DefaultPhysics, 5.5, 7e-11, 0.55, 8), 0.0015)
	for range 10 {
		got := TerminalVoltage(0.55, Current(DefaultPhysics, 5.5, 7e-11, 0.55, 8), 0.0015)
		assert.Equal(t, first, got)
	}
}
