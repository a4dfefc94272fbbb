// Package diode implements the single-diode equivalent circuit of a PV cell.
package diode

import (
	"errors"
	"math"
)

// ErrDomain is returned when Isc/Io leaves the domain of the logarithm in Voc.
var ErrDomain = errors.New("isc/io must be greater than -1")

// Physics holds the constants used by the diode equations.
type Physics struct {
	Q float64 // elementary charge in C
	K float64 // Boltzmann constant in J/K
	T float64 // cell temperature in K

	Lambda float64 // exponent factor of the diode current in 1/V, approximates q/(n*k*T)
}

// DefaultPhysics are the constants of a cell at 25 degC.
var DefaultPhysics = Physics{
	Q:      1.602e-19,
	K:      1.381e-23,
	T:      298.15,
	Lambda: 38.9,
}

// ThermalVoltage returns k*T/q in V.
func (ph Physics) ThermalVoltage() float64 {
	return (ph.K * ph.T) / ph.Q
}

// OpenCircuitVoltage returns Voc for a cell of short-circuit current isc and saturation current io.
// Expects isc > 0 and io > 0.
func OpenCircuitVoltage(ph Physics, isc, io float64) (float64, error) {
	ratio := isc / io
	if !(ratio > -1) {
		return 0, ErrDomain
	}

	return ph.ThermalVoltage() * math.Log(ratio+1), nil
}

// Current returns the terminal current for an internal diode voltage vd.
// The diode term is evaluated directly at vd, there is no implicit solve.
func Current(ph Physics, isc, io, vd, rp float64) float64 {
	return isc - io*(math.Exp(ph.Lambda*vd)-1) - (vd / rp)
}

// TerminalVoltage returns the voltage seen at the cell terminals after the series resistance drop.
func TerminalVoltage(vd, i, rs float64) float64 {
	return vd - (i * rs)
}

// Power returns v*i.
func Power(v, i float64) float64 {
	return v * i
}
