package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/elojah/pvcurve/internal/chart"
	"github.com/elojah/pvcurve/internal/pv"
	"github.com/elojah/pvcurve/internal/report"
	"github.com/elojah/pvcurve/internal/server"
)

// options are the flags shared by every command.
type options struct {
	config string

	cell     pv.Params
	numCells int
}

func (o *options) register(fs *pflag.FlagSet) {
	fs.StringVarP(&o.config, "config", "c", "", "config file (yaml, json, toml)")
	fs.StringVar(&o.cell.Label, "label", "cell", "cell label")
	fs.Float64Var(&o.cell.Isc, "isc", 0, "short-circuit current in A, overrides configured cells")
	fs.Float64Var(&o.cell.Io, "io", 0, "diode saturation current in A")
	fs.Float64Var(&o.cell.Rp, "rp", 0, "parallel resistance in Ohm")
	fs.Float64Var(&o.cell.Rs, "rs", 0, "series resistance in Ohm")
	fs.IntVar(&o.numCells, "cells", 0, "number of cells of a module built from the flag parameters")
}

// load reads config and applies the scalar flags over it.
func (o *options) load(ctx context.Context, fs *pflag.FlagSet) (config, error) {
	cfg := config{}
	if err := cfg.Populate(ctx, o.config); err != nil {
		return cfg, err
	}

	if fs.Changed("isc") {
		cfg.Cells = []pv.Params{o.cell}
		cfg.Module = moduleConfig{}
		if o.numCells > 0 {
			cfg.Module = moduleConfig{Params: o.cell, NumCells: o.numCells}
		}
	}

	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	return cfg, nil
}

// compute sweeps every configured cell and the module if any.
func compute(ctx context.Context, cfg config) ([]*pv.Cell, *pv.Module, error) {
	cells, err := pv.ComputeCells(ctx, cfg.Cells)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Module.NumCells == 0 {
		return cells, nil, nil
	}

	m, err := pv.NewModule(cfg.Module.Params, cfg.Module.NumCells)
	if err != nil {
		return nil, nil, fmt.Errorf("module: %w", err)
	}

	return cells, m, nil
}

func cmdTable(ctx context.Context, w io.Writer, cfg config) error {
	cells, m, err := compute(ctx, cfg)
	if err != nil {
		return err
	}

	rows := make([]pv.Characteristics, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, c.Characteristics())
	}
	if err := report.WriteTable(w, rows); err != nil {
		return err
	}

	if m != nil {
		fmt.Fprintf(w, "\nModule of %d cells\n", m.NumCells)
		fmt.Fprintf(w, "Unshaded MPP: %v\n", m.UnshadedMPP())
		fmt.Fprintf(w, "Shaded MPP:   %v\n", m.ShadedMPP())
		fmt.Fprintf(w, "Shading loss: %.2f%%\n", m.ShadingLoss()*100)
	}

	return nil
}

func cmdExport(ctx context.Context, w io.Writer, cfg config, format string, curves bool) error {
	cells, m, err := compute(ctx, cfg)
	if err != nil {
		return err
	}

	return report.Write(w, format, report.NewDocument(cells, m, curves))
}

// cmdPlot writes one PNG per cell, one for the module, and an HTML page if asked.
func cmdPlot(ctx context.Context, dir string, cfg config, html bool) ([]string, error) {
	cells, m, err := compute(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	var files []string
	write := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := render(f); err != nil {
			return fmt.Errorf("failed to render %s: %w", path, err)
		}
		files = append(files, path)

		return f.Close()
	}

	for _, c := range cells {
		if err := write("cell_"+fileLabel(c.Label)+".png", func(w io.Writer) error { return chart.CellPNG(w, c) }); err != nil {
			return nil, err
		}
	}
	if m != nil {
		if err := write("module.png", func(w io.Writer) error { return chart.ModulePNG(w, m) }); err != nil {
			return nil, err
		}
	}
	if html {
		if err := write("index.html", func(w io.Writer) error { return chart.PageHTML(w, cells, m) }); err != nil {
			return nil, err
		}
	}

	return files, nil
}

func fileLabel(label string) string {
	label = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == ' ' {
			return '_'
		}
		return r
	}, label)
	if label == "" {
		return "unnamed"
	}

	return label
}

func run(prog string, args []string) error {
	if len(args) < 1 {
		usage(prog)

		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var o options
	fs := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	o.register(fs)

	switch args[0] {
	case "table":
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := o.load(ctx, fs)
		if err != nil {
			return err
		}

		return cmdTable(ctx, os.Stdout, cfg)
	case "export":
		format := fs.StringP("format", "f", "json", "output format, json or yaml")
		curves := fs.Bool("curves", false, "include curve arrays")
		out := fs.StringP("out", "o", "", "output file, stdout if empty")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := o.load(ctx, fs)
		if err != nil {
			return err
		}

		w := io.Writer(os.Stdout)
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}

		return cmdExport(ctx, w, cfg, *format, *curves)
	case "plot":
		out := fs.StringP("out", "o", "", "output directory, config output if empty")
		html := fs.Bool("html", false, "also write an interactive HTML page")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := o.load(ctx, fs)
		if err != nil {
			return err
		}
		if *out == "" {
			*out = cfg.Output
		}

		files, err := cmdPlot(ctx, *out, cfg, *html)
		if err != nil {
			return err
		}
		for _, f := range files {
			log.Info().Str("file", f).Msg("chart written")
		}

		return nil
	case "serve":
		addr := fs.String("addr", "", "listen address, config server address if empty")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		cfg, err := o.load(ctx, fs)
		if err != nil {
			return err
		}
		if *addr != "" {
			cfg.Server.Addr = *addr
		}

		log.Info().Msg("api up")
		if err := server.New(cfg.Server).Run(ctx); err != nil {
			return err
		}
		fmt.Println("successfully closed api")

		return nil
	default:
		usage(prog)

		return ErrUnknownCommand{Name: args[0]}
	}
}

func usage(prog string) {
	fmt.Printf("Usage: %s <table|export|plot|serve> [flags]\n", prog)
	fmt.Println("  table   print Voc, Vmpp, Impp, Pmpp and FF of every cell")
	fmt.Println("  export  write characteristics as json or yaml")
	fmt.Println("  plot    write I-V and P-V charts")
	fmt.Println("  serve   start the HTTP API")
	fmt.Println("common flags: --config file | --isc --io --rp --rs [--label] [--cells]")
}

func main() {
	if err := run(filepath.Base(os.Args[0]), os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("failed to run")

		os.Exit(1)
	}
}
