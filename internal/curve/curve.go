// Package curve sweeps the internal diode voltage of a cell and derives its I-V and P-V arrays.
package curve

import (
	"math"
	"strconv"

	"golang.org/x/exp/constraints"

	"github.com/elojah/pvcurve/internal/diode"
)

// Step is the sweep resolution in V.
const Step = 0.001

// Curve holds the arrays of one swept cell, all indexed by the sweep index.
type Curve struct {
	Vd []float64 `json:"vd" yaml:"vd"` // internal diode voltage in V
	I  []float64 `json:"i" yaml:"i"`   // terminal current in A, rounded to 4 decimals
	V  []float64 `json:"v" yaml:"v"`   // terminal voltage in V after series resistance drop
	P  []float64 `json:"p" yaml:"p"`   // Vd*I in W
}

// Len returns the number of swept points.
func (c Curve) Len() int {
	return len(c.Vd)
}

// New sweeps a cell from 0 to its Voc and returns the curve with the Voc used to bound it.
func New(ph diode.Physics, isc, io, rp, rs float64) (Curve, float64, error) {
	voc, err := diode.OpenCircuitVoltage(ph, isc, io)
	if err != nil {
		return Curve{}, 0, err
	}

	vd := Sweep(voc)
	i := Currents(ph, vd, isc, io, rp)

	return Curve{
		Vd: vd,
		I:  i,
		V:  TerminalVoltages(vd, i, rs),
		P:  Powers(vd, i),
	}, voc, nil
}

// Round4 rounds x to 4 decimal places.
// It uses the correctly rounded decimal form of x, so exact ties go to the even digit.
func Round4(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}

	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 4, 64), 64)

	return r
}

// Sweep returns 0, 0.001, 0.002, ... up to but excluding round(voc*1000)*0.001.
func Sweep(voc float64) []float64 {
	n := math.RoundToEven(voc * 1000)
	if !(n > 0) {
		return []float64{}
	}

	vd := make([]float64, int(n))
	for x := range vd {
		vd[x] = float64(x) * Step
	}

	return vd
}

// Currents evaluates the diode current at every swept voltage.
func Currents(ph diode.Physics, vd []float64, isc, io, rp float64) []float64 {
	i := make([]float64, len(vd))
	for x, v := range vd {
		i[x] = Round4(diode.Current(ph, isc, io, v, rp))
	}

	return i
}

// ShadedVoltages returns the module voltage when one of numCells cells is shaded
// and reverse biased while the others conduct the shared current.
// Negative values are kept as is.
func ShadedVoltages(vd, i []float64, rp, rs float64, numCells int) []float64 {
	n := float64(numCells)
	vsh := make([]float64, len(vd))
	for x := range vd {
		vsh[x] = Round4(((n-1)/n)*(vd[x]*n) - (i[x] * (rp + rs)))
	}

	return vsh
}

// TerminalVoltages applies the series resistance drop to every point.
func TerminalVoltages(vd, i []float64, rs float64) []float64 {
	v := make([]float64, len(vd))
	for x := range vd {
		v[x] = diode.TerminalVoltage(vd[x], i[x], rs)
	}

	return v
}

// Powers multiplies v and i elementwise.
func Powers(v, i []float64) []float64 {
	p := make([]float64, len(v))
	for x := range v {
		p[x] = diode.Power(v[x], i[x])
	}

	return p
}

// Scale multiplies every element of v by k.
func Scale(v []float64, k float64) []float64 {
	s := make([]float64, len(v))
	for x := range v {
		s[x] = v[x] * k
	}

	return s
}

// ArgMax returns the index of the first maximum of xs, or -1 if xs is empty.
func ArgMax[T constraints.Ordered](xs []T) int {
	if len(xs) == 0 {
		return -1
	}

	idx := 0
	for x := 1; x < len(xs); x++ {
		if xs[x] > xs[idx] {
			idx = x
		}
	}

	return idx
}
