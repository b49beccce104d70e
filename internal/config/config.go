// Package config loads the arena's HCL configuration file: which models
// play, table stakes, the blind escalation schedule, and agent pipeline
// timeouts.
//
// Grounded verbatim on internal/server/config.go's pattern: parse with
// hclparse.NewParser + gohcl.DecodeBody, apply defaults for anything the
// file leaves zero-valued, and expose a Validate() that returns
// descriptive errors instead of panicking.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// ModelConfig names one LLM entrant and the gateway it's reached through.
type ModelConfig struct {
	Name        string  `hcl:"name,label"`
	GatewayURL  string  `hcl:"gateway_url,optional"`
	Temperature float64 `hcl:"temperature,optional"`
}

// TableConfig holds the stakes and starting chip counts for a match.
type TableConfig struct {
	StartingStack int `hcl:"starting_stack,optional"`
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
}

// BlindScheduleConfig mirrors tournament.BlindSchedule's fields for HCL
// decoding (internal/config does not import internal/tournament, to keep
// the dependency direction config -> domain rather than the reverse).
type BlindScheduleConfig struct {
	Multiplier    float64 `hcl:"multiplier,optional"`
	HandsPerLevel int     `hcl:"hands_per_level,optional"`
}

// PipelineConfig holds the agent decision pipeline's tunables.
type PipelineConfig struct {
	TimeoutSeconds int `hcl:"timeout_seconds,optional"`
	MaxToolRounds  int `hcl:"max_tool_rounds,optional"`
}

// RatingConfig locates the persisted ELO rating file.
type RatingConfig struct {
	Path string `hcl:"path,optional"`
}

// Config is the top-level decoded arena configuration.
type Config struct {
	Models        []ModelConfig       `hcl:"model,block"`
	Table         TableConfig         `hcl:"table,block"`
	BlindSchedule BlindScheduleConfig `hcl:"blind_schedule,block"`
	Pipeline      PipelineConfig      `hcl:"pipeline,block"`
	Rating        RatingConfig        `hcl:"rating,block"`
}

// Default returns the arena's baked-in defaults, used both as the base
// for Load and directly when no config file is given.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			StartingStack: 10000,
			SmallBlind:    50,
			BigBlind:      100,
		},
		BlindSchedule: BlindScheduleConfig{
			Multiplier:    1.5,
			HandsPerLevel: 0,
		},
		Pipeline: PipelineConfig{
			TimeoutSeconds: 30,
			MaxToolRounds:  3,
		},
		Rating: RatingConfig{
			Path: "ratings.json",
		},
	}
}

// Load reads and decodes the HCL file at path, falling back to Default()
// if the file does not exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: parse %s: %s", path, diags.Error())
	}

	cfg := Default()
	if diags := gohcl.DecodeBody(file.Body, nil, cfg); diags.HasErrors() {
		return nil, fmt.Errorf("config: decode %s: %s", path, diags.Error())
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	d := Default()
	if cfg.Table.StartingStack == 0 {
		cfg.Table.StartingStack = d.Table.StartingStack
	}
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = d.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = d.Table.BigBlind
	}
	if cfg.BlindSchedule.Multiplier == 0 {
		cfg.BlindSchedule.Multiplier = d.BlindSchedule.Multiplier
	}
	if cfg.Pipeline.TimeoutSeconds == 0 {
		cfg.Pipeline.TimeoutSeconds = d.Pipeline.TimeoutSeconds
	}
	if cfg.Pipeline.MaxToolRounds == 0 {
		cfg.Pipeline.MaxToolRounds = d.Pipeline.MaxToolRounds
	}
	if cfg.Rating.Path == "" {
		cfg.Rating.Path = d.Rating.Path
	}
	for i := range cfg.Models {
		if cfg.Models[i].Temperature == 0 {
			cfg.Models[i].Temperature = 0.2
		}
	}
}

// Validate checks the decoded configuration for internal consistency,
// mirroring ServerConfig.Validate's style of one descriptive error per
// violated invariant.
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("config: small_blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("config: big_blind must be greater than small_blind")
	}
	if c.Table.StartingStack <= 0 {
		return fmt.Errorf("config: starting_stack must be positive")
	}
	if c.BlindSchedule.Multiplier <= 1 && c.BlindSchedule.HandsPerLevel > 0 {
		return fmt.Errorf("config: blind_schedule multiplier must be greater than 1 when hands_per_level is set")
	}
	if c.Pipeline.TimeoutSeconds <= 0 {
		return fmt.Errorf("config: pipeline timeout_seconds must be positive")
	}
	if c.Pipeline.MaxToolRounds < 0 {
		return fmt.Errorf("config: pipeline max_tool_rounds must not be negative")
	}
	seen := make(map[string]bool, len(c.Models))
	for _, m := range c.Models {
		if m.Name == "" {
			return fmt.Errorf("config: model block missing a name")
		}
		if seen[m.Name] {
			return fmt.Errorf("config: duplicate model name %q", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

// ModelByName returns a model's configuration, if present.
func (c *Config) ModelByName(name string) (ModelConfig, bool) {
	for _, m := range c.Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelConfig{}, false
}
