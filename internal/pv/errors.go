package pv

import "fmt"

type ErrInvalidParameter struct {
	Name  string
	Value float64
}

func (err ErrInvalidParameter) Error() string {
	return fmt.Sprintf("invalid parameter %s: %v", err.Name, err.Value)
}

// ErrDegenerateCurve is returned when Voc rounds to 0 mV and the sweep is empty.
type ErrDegenerateCurve struct {
	Voc float64
}

func (err ErrDegenerateCurve) Error() string {
	return fmt.Sprintf("degenerate curve, voc %g V yields no sweep point", err.Voc)
}
