package pv

import (
	"fmt"

	"github.com/elojah/pvcurve/internal/curve"
	"github.com/elojah/pvcurve/internal/diode"
)

// Characteristics summarizes a cell curve at its maximum power point.
type Characteristics struct {
	Label string  `json:"label" yaml:"label"`
	Voc   float64 `json:"voc" yaml:"voc"`   // open-circuit voltage in V
	Vmpp  float64 `json:"vmpp" yaml:"vmpp"` // diode voltage at maximum power in V
	Impp  float64 `json:"impp" yaml:"impp"` // current at maximum power in A
	Pmpp  float64 `json:"pmpp" yaml:"pmpp"` // Vmpp*Impp in W
	FF    float64 `json:"ff" yaml:"ff"`     // fill factor Pmpp/(Voc*Isc)
}

func (c Characteristics) String() string {
	return fmt.Sprintf("For cell %s\nVoc = %.4f\nVmpp = %.4f\nImpp = %.4f\nPmpp = %.4f\nFF = %.4f\n", c.Label, c.Voc, c.Vmpp, c.Impp, c.Pmpp, c.FF)
}

// Cell is a swept PV cell and its maximum power point.
type Cell struct {
	Params
	curve.Curve

	Voc float64

	mpp int
	ch  Characteristics
}

// NewCell sweeps p with the default physical constants.
func NewCell(p Params) (*Cell, error) {
	return NewCellWithPhysics(diode.DefaultPhysics, p)
}

// NewCellWithPhysics sweeps p from 0 to its Voc and locates the maximum of Vd*I.
func NewCellWithPhysics(ph diode.Physics, p Params) (*Cell, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c, voc, err := sweep(ph, p)
	if err != nil {
		return nil, err
	}

	// Vmpp and Impp are taken from the arrays, no interpolation
	idx := curve.ArgMax(c.P)
	vmpp := c.Vd[idx]
	impp := c.I[idx]
	pmpp := vmpp * impp

	return &Cell{
		Params: p,
		Curve:  c,
		Voc:    voc,
		mpp:    idx,
		ch: Characteristics{
			Label: p.Label,
			Voc:   voc,
			Vmpp:  vmpp,
			Impp:  impp,
			Pmpp:  pmpp,
			FF:    pmpp / (voc * p.Isc),
		},
	}, nil
}

// Characteristics returns the scalar summary of the cell.
func (c *Cell) Characteristics() Characteristics {
	return c.ch
}

// MPPIndex returns the sweep index of the maximum power point.
func (c *Cell) MPPIndex() int {
	return c.mpp
}
