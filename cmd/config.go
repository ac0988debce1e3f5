package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/galmock/galmock/hod"
)

// Config is the yaml parameter file, laid out the way the subsample
// preprocessing tools write it: simulation-scoped scalars under sim_params
// and the per-tracer HOD parameter maps under HOD_params.
type Config struct {
	SimParams SimParams `yaml:"sim_params"`
	HODParams HODConfig `yaml:"HOD_params"`
}

// SimParams holds simulation-scoped scalars and catalog locations.
type SimParams struct {
	LBox         float64 `yaml:"Lbox"`      // periodic box size
	VelZToKms    float64 `yaml:"velz2kms"`  // km/s per unit line-of-sight displacement
	ParticleMass float64 `yaml:"Mpart"`     // particle mass in solar masses
	HaloFile     string  `yaml:"halo_file"` // halo catalog CSV
	ParticleFile string  `yaml:"particle_file"`
}

// HODConfig selects tracers and carries their named parameter maps.
type HODConfig struct {
	TracerFlags map[string]bool    `yaml:"tracer_flags"`
	WantRSD     bool               `yaml:"want_rsd"`
	WantRanks   bool               `yaml:"want_ranks"`
	WriteToDisk bool               `yaml:"write_to_disk"`
	LRGParams   map[string]float64 `yaml:"LRG_params"`
	ELGParams   map[string]float64 `yaml:"ELG_params"`
	QSOParams   map[string]float64 `yaml:"QSO_params"`
}

// LoadConfig reads and parses the yaml parameter file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Params converts the named parameter maps into the typed HOD parameter set,
// failing fast on missing keys. Maps for inactive tracers may be omitted.
func (h HODConfig) Params() (hod.HODParams, error) {
	var p hod.HODParams
	var err error
	if h.TracerFlags["LRG"] {
		if p.LRG, err = hod.LRGDesignFromMap(h.LRGParams); err != nil {
			return p, err
		}
		if p.LRGDecor, err = hod.LRGDecorationsFromMap(h.LRGParams); err != nil {
			return p, err
		}
	}
	if h.TracerFlags["ELG"] {
		if p.ELG, err = hod.ELGDesignFromMap(h.ELGParams); err != nil {
			return p, err
		}
	}
	if h.TracerFlags["QSO"] {
		if p.QSO, err = hod.QSODesignFromMap(h.QSOParams); err != nil {
			return p, err
		}
	}
	return p, nil
}

// RunConfig translates the config into the run parameters of one pass.
func (c *Config) RunConfig() hod.RunConfig {
	return hod.RunConfig{
		WantLRG:      c.HODParams.TracerFlags["LRG"],
		WantELG:      c.HODParams.TracerFlags["ELG"],
		WantQSO:      c.HODParams.TracerFlags["QSO"],
		RSD:          c.HODParams.WantRSD,
		EnableRanks:  c.HODParams.WantRanks,
		LBox:         c.SimParams.LBox,
		VelZToKms:    c.SimParams.VelZToKms,
		ParticleMass: c.SimParams.ParticleMass,
	}
}
