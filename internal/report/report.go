// Package report writes cell characteristics as a table, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/elojah/pvcurve/internal/curve"
	"github.com/elojah/pvcurve/internal/pv"
)

// Headers of the characteristics table.
var Headers = []string{"PV Cell", "Voc (V)", "Vmpp (V)", "Impp (A)", "Pmpp (W)", "FF"}

// Document is the exported shape of a run.
type Document struct {
	Cells  []CellEntry  `json:"cells" yaml:"cells"`
	Module *ModuleEntry `json:"module,omitempty" yaml:"module,omitempty"`
}

type CellEntry struct {
	pv.Characteristics `yaml:",inline"`

	Curve *curve.Curve `json:"curve,omitempty" yaml:"curve,omitempty"`
}

type ModuleEntry struct {
	Params      pv.Params `json:"params" yaml:"params"`
	NumCells    int       `json:"num_cells" yaml:"num_cells"`
	Unshaded    pv.MPP    `json:"unshaded_mpp" yaml:"unshaded_mpp"`
	Shaded      pv.MPP    `json:"shaded_mpp" yaml:"shaded_mpp"`
	ShadingLoss float64   `json:"shading_loss" yaml:"shading_loss"`

	V   []float64 `json:"v,omitempty" yaml:"v,omitempty"`
	Vsh []float64 `json:"vsh,omitempty" yaml:"vsh,omitempty"`
	I   []float64 `json:"i,omitempty" yaml:"i,omitempty"`
}

// NewDocument collects cells and an optional module. Arrays are included when withCurves is set.
func NewDocument(cells []*pv.Cell, module *pv.Module, withCurves bool) Document {
	doc := Document{Cells: make([]CellEntry, 0, len(cells))}
	for _, c := range cells {
		e := CellEntry{Characteristics: c.Characteristics()}
		if withCurves {
			cc := c.Curve
			e.Curve = &cc
		}
		doc.Cells = append(doc.Cells, e)
	}

	if module != nil {
		m := &ModuleEntry{
			Params:      module.Params,
			NumCells:    module.NumCells,
			Unshaded:    module.UnshadedMPP(),
			Shaded:      module.ShadedMPP(),
			ShadingLoss: module.ShadingLoss(),
		}
		if withCurves {
			m.V, m.Vsh, m.I = module.V, module.Vsh, module.I
		}
		doc.Module = m
	}

	return doc
}

// WriteTable writes one row per cell, values rounded to 4 decimals.
func WriteTable(w io.Writer, rows []pv.Characteristics) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	for x, h := range Headers {
		sep := "\t"
		if x == len(Headers)-1 {
			sep = "\t\n"
		}
		if _, err := fmt.Fprint(tw, h+sep); err != nil {
			return err
		}
	}

	for _, r := range rows {
		if _, err := fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t\n",
			r.Label, r.Voc, r.Vmpp, r.Impp, r.Pmpp, r.FF); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(doc)
}

// WriteYAML writes doc as YAML.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

// Write dispatches on format, json or yaml.
func Write(w io.Writer, format string, doc Document) error {
	switch format {
	case "json":
		return WriteJSON(w, doc)
	case "yaml", "yml":
		return WriteYAML(w, doc)
	default:
		return ErrUnknownFormat{Format: format}
	}
}

type ErrUnknownFormat struct {
	Format string
}

func (err ErrUnknownFormat) Error() string {
	return fmt.Sprintf("unknown format %q", err.Format)
}
