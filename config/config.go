// Package config holds the field tables, destination cells and engine
// limits used by a batch run.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/reportscan/extract"
)

type Config struct {
	Engine   EngineConfig   `toml:"engine"`
	Micro    []MicroField   `toml:"micro"`
	Tensile  []TensileField `toml:"tensile"`
	Hardness HardnessConfig `toml:"hardness"`
	Spectro  []CellMapping  `toml:"spectro"`
}

type EngineConfig struct {
	Window               int     `toml:"window"`
	RowTolerance         float64 `toml:"row_tolerance"`
	HardnessRowTolerance float64 `toml:"hardness_row_tolerance"`
	LeftSlack            float64 `toml:"left_slack"`
	MaxHardness          int     `toml:"max_hardness"`
	Page                 int     `toml:"page"`
}

// MicroField is one microstructure field and the cell it is written to.
type MicroField struct {
	Label      string             `toml:"label"`
	Occurrence extract.Occurrence `toml:"occurrence"`
	Rule       extract.Rule       `toml:"rule"`
	Cell       string             `toml:"cell"`
}

// TensileField is one tensile field and the cell it is written to.
type TensileField struct {
	Label   string `toml:"label"`
	Keyword string `toml:"keyword"`
	Cell    string `toml:"cell"`
}

type HardnessConfig struct {
	Label string   `toml:"label"`
	Unit  string   `toml:"unit"`
	Cells []string `toml:"cells"`
}

// CellMapping copies Source in the spectrometer sheet to Dest.
type CellMapping struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
}

// microCells lists the destination cells of extract.MicroFields, in order.
var microCells = []string{"T36", "T37", "T38", "T39", "T40", "T41"}

// tensileCells lists the destination cells of extract.TensileFields, in order.
var tensileCells = []string{"E26", "E27", "E28"}

// Default returns a Config with all defaults applied.
func Default() Config {
	t := extract.DefaultTuning()
	cfg := Config{
		Engine: EngineConfig{
			Window:               t.Window,
			RowTolerance:         t.RowTolerance,
			HardnessRowTolerance: t.HardnessRowTolerance,
			LeftSlack:            t.LeftSlack,
			MaxHardness:          t.MaxHardness,
			Page:                 0,
		},
		Hardness: HardnessConfig{
			Label: extract.DefaultHardness().Label,
			Unit:  extract.DefaultHardness().Unit,
			Cells: []string{"E29", "E30"},
		},
		Spectro: []CellMapping{
			{"C2", "E14"}, // heat code
			{"B10", "E16"},
			{"C10", "E17"},
			{"D10", "E18"},
			{"F10", "E19"},
			{"E10", "E20"},
			{"G10", "E21"},
			{"L10", "E22"},
			{"S10", "E23"},
		},
	}
	for i, f := range extract.MicroFields() {
		cfg.Micro = append(cfg.Micro, MicroField{Label: f.Label, Occurrence: f.Occurrence, Rule: f.Rule, Cell: microCells[i]})
	}
	for i, f := range extract.TensileFields() {
		cfg.Tensile = append(cfg.Tensile, TensileField{Label: f.Label, Keyword: f.Keyword, Cell: tensileCells[i]})
	}
	return cfg
}

// Load reads config: defaults -> TOML file -> env vars (env wins). A
// missing file leaves the defaults in place. A table array present in the
// file ([[micro]], [[tensile]], [[spectro]]) replaces its default list.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case path == "" || errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		md, err := toml.Decode(string(data), &Config{})
		if err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return Config{}, fmt.Errorf("config %s: unknown keys %v", path, keys)
		}
		if md.IsDefined("micro") {
			cfg.Micro = nil
		}
		if md.IsDefined("tensile") {
			cfg.Tensile = nil
		}
		if md.IsDefined("spectro") {
			cfg.Spectro = nil
		}
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Env overrides
	if v := os.Getenv("REPORTSCAN_PAGE"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("REPORTSCAN_PAGE: %w", err)
		}
		cfg.Engine.Page = page
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every table entry and the engine limits.
func (c Config) Validate() error {
	var errs []error

	if err := c.Tuning().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Engine.Page < 0 {
		errs = append(errs, fmt.Errorf("engine: page must not be negative, got %d", c.Engine.Page))
	}

	for _, f := range c.Micro {
		spec := extract.FieldSpec{Label: f.Label, Occurrence: f.Occurrence, Rule: f.Rule}
		if err := spec.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("micro: %w", err))
		} else if spec.Rule.Spatial() {
			errs = append(errs, fmt.Errorf("micro field %q: rule %v needs a PDF", f.Label, f.Rule))
		}
		errs = append(errs, checkCell("micro", f.Label, f.Cell))
	}
	for _, f := range c.Tensile {
		if f.Label == "" || f.Keyword == "" {
			errs = append(errs, fmt.Errorf("tensile: label and keyword are required"))
		}
		errs = append(errs, checkCell("tensile", f.Label, f.Cell))
	}

	if err := c.HardnessSpec().Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Hardness.Cells) < c.Engine.MaxHardness {
		errs = append(errs, fmt.Errorf("hardness: %d cells for %d readings", len(c.Hardness.Cells), c.Engine.MaxHardness))
	}
	for _, cell := range c.Hardness.Cells {
		errs = append(errs, checkCell("hardness", c.Hardness.Label, cell))
	}

	for _, m := range c.Spectro {
		errs = append(errs, checkCell("spectro", "source", m.Source))
		errs = append(errs, checkCell("spectro", "dest", m.Dest))
	}

	return errors.Join(errs...)
}

func checkCell(table, field, cell string) error {
	if _, _, err := excelize.CellNameToCoordinates(strings.TrimSpace(cell)); err != nil {
		return fmt.Errorf("%s %q: bad cell %q: %w", table, field, cell, err)
	}
	return nil
}

// Tuning returns the engine limits.
func (c Config) Tuning() extract.Tuning {
	return extract.Tuning{
		Window:               c.Engine.Window,
		RowTolerance:         c.Engine.RowTolerance,
		HardnessRowTolerance: c.Engine.HardnessRowTolerance,
		LeftSlack:            c.Engine.LeftSlack,
		MaxHardness:          c.Engine.MaxHardness,
	}
}

// MicroSpecs returns the microstructure field specs.
func (c Config) MicroSpecs() []extract.FieldSpec {
	out := make([]extract.FieldSpec, len(c.Micro))
	for i, f := range c.Micro {
		out[i] = extract.FieldSpec{Label: f.Label, Occurrence: f.Occurrence, Rule: f.Rule}
	}
	return out
}

// MicroCells maps each microstructure label to its destination cell.
func (c Config) MicroCells() map[string]string {
	out := make(map[string]string, len(c.Micro))
	for _, f := range c.Micro {
		out[f.Label] = f.Cell
	}
	return out
}

// TensileSpecs returns the tensile field specs.
func (c Config) TensileSpecs() []extract.FieldSpec {
	out := make([]extract.FieldSpec, len(c.Tensile))
	for i, f := range c.Tensile {
		out[i] = extract.FieldSpec{Label: f.Label, Rule: extract.NearestRight, Keyword: f.Keyword}
	}
	return out
}

// TensileCells maps each tensile label to its destination cell.
func (c Config) TensileCells() map[string]string {
	out := make(map[string]string, len(c.Tensile))
	for _, f := range c.Tensile {
		out[f.Label] = f.Cell
	}
	return out
}

func (c Config) HardnessSpec() extract.HardnessSpec {
	return extract.HardnessSpec{Label: c.Hardness.Label, Unit: c.Hardness.Unit}
}
