// Package config loads a run's material table and beam entries from a YAML
// fixture, the ambient host-configuration layer around the mc core.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kjhughes/febidmc/mc"
)

// MaterialConfig is one material table row as it appears in a run file. J is
// left at zero when the fixture wants it derived from Z via mc.IonizationPotentialKeV.
type MaterialConfig struct {
	Density      float64 `yaml:"density_kg_per_nm3"`
	AtomicNumber float64 `yaml:"atomic_number"`
	AtomicWeight float64 `yaml:"atomic_weight"`
	IonPotential float64 `yaml:"ion_potential_kev"`
	EscapeLenNm  float64 `yaml:"escape_len_nm"`
	Mark         float64 `yaml:"mark"`
}

// EntryConfig is one beam entry row.
type EntryConfig struct {
	Y  float64 `yaml:"y"`
	X  float64 `yaml:"x"`
	E0 float64 `yaml:"e0_kev"`
}

// RunConfig is the full decoded run description: the seed, energy floor,
// material table, and beam entries. The grid itself is loaded separately
// (GridFile) since it is typically much larger than the rest of the config.
type RunConfig struct {
	Seed      int64            `yaml:"seed"`
	EMinKeV   float64          `yaml:"e_min_kev"`
	CellDim   float64          `yaml:"cell_dim_nm"`
	Materials []MaterialConfig `yaml:"materials"`
	Entries   []EntryConfig    `yaml:"entries"`
	GridFile  string           `yaml:"grid_file"`
}

// Load decodes a RunConfig from path, reporting decode and structural
// problems as *mc.InvalidInputError so callers can handle every kind of bad
// input uniformly.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &mc.InvalidInputError{Reason: fmt.Sprintf("reading config %s: %s", path, err)}
	}

	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &mc.InvalidInputError{Reason: fmt.Sprintf("decoding config %s: %s", path, err)}
	}
	if len(cfg.Materials) == 0 {
		return nil, &mc.InvalidInputError{Reason: "config has no materials"}
	}
	if len(cfg.Entries) == 0 {
		return nil, &mc.InvalidInputError{Reason: "config has no entries"}
	}
	if cfg.CellDim <= 0 {
		return nil, &mc.InvalidInputError{Reason: "cell_dim_nm must be positive"}
	}
	return &cfg, nil
}

// Elements converts the config's material rows to mc.Element values,
// deriving IonPotential from AtomicNumber via mc.IonizationPotentialKeV
// when a row leaves it at zero.
func (c *RunConfig) Elements() []mc.Element {
	out := make([]mc.Element, len(c.Materials))
	for i, m := range c.Materials {
		j := m.IonPotential
		if j == 0 {
			j = mc.IonizationPotentialKeV(m.AtomicNumber)
		}
		out[i] = mc.Element{
			Density:         m.Density,
			AtomicNumber:    m.AtomicNumber,
			AtomicWeight:    m.AtomicWeight,
			IonPotentialKeV: j,
			EscapeLenNm:     m.EscapeLenNm,
			Mark:            m.Mark,
		}
	}
	return out
}

// EntriesToMC converts the config's beam entries to mc.Entry values.
func (c *RunConfig) EntriesToMC() []mc.Entry {
	out := make([]mc.Entry, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = mc.Entry{Y: e.Y, X: e.X, E0: e.E0}
	}
	return out
}
