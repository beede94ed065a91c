package town

import (
	"strconv"

	"tiletown/internal/core"
)

var (
	_ core.ParameterProvider    = (*World)(nil)
	_ core.IntParameterSetter   = (*World)(nil)
	_ core.FloatParameterSetter = (*World)(nil)
)

// Parameters reports the tunables grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.grid.W),
				intParam("h", "Height", w.grid.H),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name: "Generation",
			Params: []core.Parameter{
				floatParam("lake_decay", "Lake decay", params.LakeDecay),
				floatParam("lake_floor", "Lake probability floor", params.LakeFloor),
				floatParam("road_min_distance", "Road min distance", params.RoadMinDistance),
				intParam("road_max_attempts", "Road max attempts", params.RoadMaxAttempts),
				floatParam("initial_house_chance", "Initial house chance", params.InitialHouseChance),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				floatParam("move_out_chance", "Move-out chance", params.MoveOutChance),
				floatParam("birth_chance", "Birth chance", params.BirthChance),
				floatParam("growth_chance", "Growth chance", params.GrowthChance),
				intParam("sample_frequency", "Sample frequency", params.SampleFrequency),
				intParam("history_capacity", "History capacity", params.HistoryCapacity),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// SetFloatParameter updates a per-tick probability. Generation parameters
// are fixed once the world exists and are rejected.
func (w *World) SetFloatParameter(key string, value float64) bool {
	var target *float64
	switch key {
	case "move_out_chance":
		target = &w.cfg.Params.MoveOutChance
	case "birth_chance":
		target = &w.cfg.Params.BirthChance
	case "growth_chance":
		target = &w.cfg.Params.GrowthChance
	default:
		return false
	}
	if value < 0 {
		value = 0
	}
	if value > 1 {
		value = 1
	}
	*target = value
	return true
}

// SetIntParameter updates the sampling cadence.
func (w *World) SetIntParameter(key string, value int) bool {
	if key != "sample_frequency" {
		return false
	}
	if value < 1 {
		value = 1
	}
	w.cfg.Params.SampleFrequency = value
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
