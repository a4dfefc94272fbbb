package pv

import (
	"fmt"

	"github.com/elojah/pvcurve/internal/curve"
	"github.com/elojah/pvcurve/internal/diode"
)

// MPP is a maximum power point located on one of the module curves.
type MPP struct {
	Index int     `json:"index" yaml:"index"`
	V     float64 `json:"v" yaml:"v"` // module voltage in V
	I     float64 `json:"i" yaml:"i"` // current in A
	P     float64 `json:"p" yaml:"p"` // V*I in W
}

func (m MPP) String() string {
	return fmt.Sprintf("V: %.4f, I: %.4f, P: %.4f", m.V, m.I, m.P)
}

// Module is a string of NumCells identical cells, compared unshaded and with one cell shaded.
// The sweep is bounded by the Voc of a single cell.
type Module struct {
	Params
	NumCells int

	Voc float64 // single cell Voc in V

	Vd  []float64 // single cell diode voltage in V
	I   []float64 // current shared by every cell in A
	V   []float64 // unshaded module voltage, Vd*NumCells, in V
	Vsh []float64 // module voltage with one shaded cell in V, may be negative
}

// NewModule builds a module with the default physical constants.
func NewModule(p Params, numCells int) (*Module, error) {
	return NewModuleWithPhysics(diode.DefaultPhysics, p, numCells)
}

// NewModuleWithPhysics sweeps one representative cell and scales it to numCells.
func NewModuleWithPhysics(ph diode.Physics, p Params, numCells int) (*Module, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if numCells < 1 {
		return nil, ErrInvalidParameter{Name: "num_cells", Value: float64(numCells)}
	}

	c, voc, err := sweep(ph, p)
	if err != nil {
		return nil, err
	}

	return &Module{
		Params:   p,
		NumCells: numCells,
		Voc:      voc,
		Vd:       c.Vd,
		I:        c.I,
		V:        curve.Scale(c.Vd, float64(numCells)),
		Vsh:      curve.ShadedVoltages(c.Vd, c.I, p.Rp, p.Rs, numCells),
	}, nil
}

// UnshadedMPP returns the maximum power point of the full module curve.
func (m *Module) UnshadedMPP() MPP {
	return mpp(m.V, m.I)
}

// ShadedMPP returns the maximum power point of the one-cell-shaded curve.
// Points with a negative shaded voltage take part in the scan with a negative power.
func (m *Module) ShadedMPP() MPP {
	return mpp(m.Vsh, m.I)
}

// ShadingLoss returns the relative power lost at MPP when one cell is shaded.
func (m *Module) ShadingLoss() float64 {
	unshaded := m.UnshadedMPP().P
	if unshaded == 0 {
		return 0
	}

	return 1 - m.ShadedMPP().P/unshaded
}

func mpp(v, i []float64) MPP {
	idx := curve.ArgMax(curve.Powers(v, i))
	if idx < 0 {
		return MPP{Index: -1}
	}

	return MPP{
		Index: idx,
		V:     v[idx],
		I:     i[idx],
		P:     v[idx] * i[idx],
	}
}
