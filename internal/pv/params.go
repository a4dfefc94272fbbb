// Package pv computes the characteristics of PV cells and modules from their single-diode parameters.
package pv

import (
	"errors"
	"fmt"
	"math"

	"github.com/elojah/pvcurve/internal/curve"
	"github.com/elojah/pvcurve/internal/diode"
)

// Params are the single-diode parameters of one physical cell or module.
type Params struct {
	Label string  `json:"label" yaml:"label" toml:"label"`
	Isc   float64 `json:"isc" yaml:"isc" toml:"isc"` // short-circuit current in A (> 0)
	Io    float64 `json:"io" yaml:"io" toml:"io"`    // diode saturation current in A (> 0)
	Rp    float64 `json:"rp" yaml:"rp" toml:"rp"`    // parallel resistance in Ohm (> 0)
	Rs    float64 `json:"rs" yaml:"rs" toml:"rs"`    // series resistance in Ohm (>= 0)
}

func (p Params) String() string {
	return fmt.Sprintf("Label: %s, Isc: %g, Io: %g, Rp: %g, Rs: %g", p.Label, p.Isc, p.Io, p.Rp, p.Rs)
}

// Validate returns an ErrInvalidParameter for the first parameter out of its physical range.
func (p Params) Validate() error {
	for _, c := range []struct {
		name  string
		value float64
		ok    bool
	}{
		{"isc", p.Isc, p.Isc > 0},
		{"io", p.Io, p.Io > 0},
		{"rp", p.Rp, p.Rp > 0},
		{"rs", p.Rs, p.Rs >= 0},
	} {
		if !c.ok || math.IsInf(c.value, 0) {
			return ErrInvalidParameter{Name: c.name, Value: c.value}
		}
	}

	return nil
}

// sweep builds the curve of p, mapping the diode domain error to an ErrInvalidParameter.
func sweep(ph diode.Physics, p Params) (curve.Curve, float64, error) {
	c, voc, err := curve.New(ph, p.Isc, p.Io, p.Rp, p.Rs)
	if errors.Is(err, diode.ErrDomain) {
		return curve.Curve{}, 0, fmt.Errorf("%w: %w", ErrInvalidParameter{Name: "isc/io", Value: p.Isc / p.Io}, err)
	} else if err != nil {
		return curve.Curve{}, 0, err
	}

	if c.Len() == 0 {
		return curve.Curve{}, voc, ErrDegenerateCurve{Voc: voc}
	}

	return c, voc, nil
}
