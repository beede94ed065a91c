package town

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"tiletown/internal/history"
)

// The world is a fixed 32×32 grid.
const (
	GridWidth  = 32
	GridHeight = 32
)

// Params holds the probabilities and limits driving generation and growth.
type Params struct {
	LakeDecay          float64 `yaml:"lake_decay"`
	LakeFloor          float64 `yaml:"lake_floor"`
	RoadMinDistance    float64 `yaml:"road_min_distance"`
	RoadMaxAttempts    int     `yaml:"road_max_attempts"`
	InitialHouseChance float64 `yaml:"initial_house_chance"`

	MoveOutChance float64 `yaml:"move_out_chance"`
	BirthChance   float64 `yaml:"birth_chance"`
	GrowthChance  float64 `yaml:"growth_chance"`

	SampleFrequency int `yaml:"sample_frequency"`
	HistoryCapacity int `yaml:"history_capacity"`
}

// Config controls a town world.
type Config struct {
	Seed   int64  `yaml:"seed"`
	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Seed: 1337,
		Params: Params{
			LakeDecay:          0.875,
			LakeFloor:          1e-3,
			RoadMinDistance:    8,
			RoadMaxAttempts:    256,
			InitialHouseChance: 0.15,
			MoveOutChance:      0.01,
			BirthChance:        0.01,
			GrowthChance:       0.0025,
			SampleFrequency:    5,
			HistoryCapacity:    history.DefaultCapacity,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable or out-of-range values keep their defaults.
func FromMap(cfg map[string]string) Config {
	return Override(DefaultConfig(), cfg)
}

// Override applies string key/value pairs on top of base. Unparseable or
// out-of-range values keep the base value.
func Override(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	for key, v := range cfg {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			continue
		}
		if ptr := c.Params.floatField(key); ptr != nil {
			if key == "lake_decay" && (parsed <= 0 || parsed >= 1) {
				continue
			}
			if parsed >= 0 {
				*ptr = parsed
			}
			continue
		}
		if ptr := c.Params.intField(key); ptr != nil && parsed == float64(int(parsed)) {
			*ptr = int(parsed)
		}
	}
	c.Params.clamp()
	return c
}

func (p *Params) floatField(key string) *float64 {
	switch key {
	case "lake_decay":
		return &p.LakeDecay
	case "lake_floor":
		return &p.LakeFloor
	case "road_min_distance":
		return &p.RoadMinDistance
	case "initial_house_chance":
		return &p.InitialHouseChance
	case "move_out_chance":
		return &p.MoveOutChance
	case "birth_chance":
		return &p.BirthChance
	case "growth_chance":
		return &p.GrowthChance
	}
	return nil
}

func (p *Params) intField(key string) *int {
	switch key {
	case "road_max_attempts":
		return &p.RoadMaxAttempts
	case "sample_frequency":
		return &p.SampleFrequency
	case "history_capacity":
		return &p.HistoryCapacity
	}
	return nil
}

func (p *Params) clamp() {
	for _, ptr := range []*float64{&p.InitialHouseChance, &p.MoveOutChance, &p.BirthChance, &p.GrowthChance} {
		if *ptr > 1 {
			*ptr = 1
		}
	}
	if p.RoadMaxAttempts < 1 {
		p.RoadMaxAttempts = 1
	}
	if p.SampleFrequency < 1 {
		p.SampleFrequency = 1
	}
	if p.HistoryCapacity < 2 {
		p.HistoryCapacity = 2
	}
	if p.HistoryCapacity%2 != 0 {
		p.HistoryCapacity++
	}
}

// Validate checks cross-field rules that the loaders rely on.
func (c Config) Validate() error {
	p := c.Params
	var errs []error
	if p.LakeDecay <= 0 || p.LakeDecay >= 1 {
		errs = append(errs, fmt.Errorf("lake_decay %v must be in (0,1)", p.LakeDecay))
	}
	if p.LakeFloor < 0 || p.LakeFloor >= 1 {
		errs = append(errs, fmt.Errorf("lake_floor %v must be in [0,1)", p.LakeFloor))
	}
	if p.RoadMinDistance < 0 {
		errs = append(errs, fmt.Errorf("road_min_distance %v must not be negative", p.RoadMinDistance))
	}
	if p.RoadMaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("road_max_attempts %d must be at least 1", p.RoadMaxAttempts))
	}
	chances := []struct {
		key string
		v   float64
	}{
		{"initial_house_chance", p.InitialHouseChance},
		{"move_out_chance", p.MoveOutChance},
		{"birth_chance", p.BirthChance},
		{"growth_chance", p.GrowthChance},
	}
	for _, ch := range chances {
		if ch.v < 0 || ch.v > 1 {
			errs = append(errs, fmt.Errorf("%s %v must be in [0,1]", ch.key, ch.v))
		}
	}
	if p.SampleFrequency < 1 {
		errs = append(errs, fmt.Errorf("sample_frequency %d must be at least 1", p.SampleFrequency))
	}
	if p.HistoryCapacity < 2 || p.HistoryCapacity%2 != 0 {
		errs = append(errs, fmt.Errorf("history_capacity %d must be an even number >= 2", p.HistoryCapacity))
	}
	return errors.Join(errs...)
}

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

// LoadConfig reads a YAML config file. Keys missing from the file keep their
// defaults. The document is checked against the embedded schema before it is
// decoded, then validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	return ParseConfig(raw)
}

// ParseConfig decodes a YAML config document on top of DefaultConfig.
func ParseConfig(raw []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := checkSchema(raw); err != nil {
		return cfg, fmt.Errorf("town.yaml: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("town.yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("town.yaml: %w", err)
	}
	return cfg, nil
}

func checkSchema(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if doc == nil {
		doc = map[string]any{}
	}
	// Round-trip through JSON so the validator sees JSON-typed values.
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var inst any
	if err := json.Unmarshal(b, &inst); err != nil {
		return err
	}
	return configSchema.Validate(inst)
}
