package main

import (
	"context"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/elojah/pvcurve/internal/pv"
	"github.com/elojah/pvcurve/internal/server"
)

type config struct {
	Cells  []pv.Params   `json:"cells" yaml:"cells" toml:"cells"`
	Module moduleConfig  `json:"module" yaml:"module" toml:"module"`
	Server server.Config `json:"server" yaml:"server" toml:"server"`

	Output   string `json:"output" yaml:"output" toml:"output" env:"PV_OUTPUT" env-default:"out"`
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level" env:"PV_LOG_LEVEL" env-default:"info"`
}

type moduleConfig struct {
	pv.Params `yaml:",inline"`
	NumCells  int `json:"num_cells" yaml:"num_cells" toml:"num_cells"` // 0 means no module
}

// Populate populates config object reading file and env.
// Without a file only env is read, and the reference cells are used.
func (c *config) Populate(ctx context.Context, filename string) error {
	if filename == "" {
		if err := cleanenv.ReadEnv(c); err != nil {
			return err
		}
	} else if err := cleanenv.ReadConfig(filename, c); err != nil {
		return err
	}

	if len(c.Cells) == 0 && c.Module.NumCells == 0 {
		c.Cells = referenceCells()
		c.Module = referenceModule()
	}

	return nil
}

// referenceCells are the three cells of the original comparison.
func referenceCells() []pv.Params {
	return []pv.Params{
		{Label: "A", Isc: 5, Io: 6e-11, Rp: 10, Rs: 0.001},
		{Label: "B", Isc: 6, Io: 5e-11, Rp: 12, Rs: 0.0025},
		{Label: "C", Isc: 5.5, Io: 7e-11, Rp: 8, Rs: 0.0015},
	}
}

// referenceModule is a 102 cells module built from cell B.
func referenceModule() moduleConfig {
	return moduleConfig{
		Params:   pv.Params{Label: "module", Isc: 6, Io: 5e-11, Rp: 12, Rs: 0.0025},
		NumCells: 102,
	}
}
