// Package town implements the city-growth world: procedural seeding of a
// lake, a road and houses, and the per-tick occupancy simulation.
package town

import (
	"strings"

	"tiletown/internal/core"
	"tiletown/internal/history"
)

// Status holds the derived population counters. The overlay binds to its
// fields by reference, so they are updated in place every tick.
type Status struct {
	Tick       int
	Population int
	Emigration int
	Houses     int
}

// Report summarises a Generate call.
type Report struct {
	Lake          Point
	LakeTiles     int
	RoadFrom      Point
	RoadTo        Point
	RoadTiles     int
	RoadFallback  bool
	InitialHouses int
}

// World owns the grid, the house list, the derived counters and the sample
// history. Generation and simulation mutate it; the renderer observes it.
type World struct {
	cfg     Config
	grid    *core.Grid
	rng     core.Source
	history *history.Samples
	status  Status
}

// New returns a world seeded from cfg.Seed.
func New(cfg Config) *World {
	return NewWithSource(cfg, core.NewRNG(cfg.Seed))
}

// NewWithSource returns a world drawing randomness from rng.
func NewWithSource(cfg Config, rng core.Source) *World {
	return &World{
		cfg:     cfg,
		grid:    core.NewGrid(GridWidth, GridHeight),
		rng:     rng,
		history: history.New(cfg.Params.HistoryCapacity),
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "town" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Grid exposes the tile grid.
func (w *World) Grid() *core.Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// History exposes the population sample series.
func (w *World) History() *history.Samples { return w.history }

// Status exposes the live counters.
func (w *World) Status() *Status { return &w.status }

// Population returns the total occupants counted by the last tick.
func (w *World) Population() int { return w.status.Population }

// Emigration returns the migrants that found no vacancy in the last tick.
func (w *World) Emigration() int { return w.status.Emigration }

// Tick returns the number of ticks simulated.
func (w *World) Tick() int { return w.status.Tick }

// Generate seeds the lake, the road and the initial houses. It runs once,
// before the first tick; every tile write goes through the grid observer.
func (w *World) Generate() Report {
	p := w.cfg.Params
	var r Report

	r.Lake = RandomPoint(w.grid, w.rng)
	r.LakeTiles = GenerateLake(w.grid, w.rng, r.Lake.X, r.Lake.Y, p.LakeDecay, p.LakeFloor)

	r.RoadFrom, r.RoadTo, r.RoadFallback = PickRoadEndpoints(w.grid, w.rng, p.RoadMinDistance, p.RoadMaxAttempts)
	r.RoadTiles = DrawRoad(w.grid, r.RoadFrom, r.RoadTo)

	r.InitialHouses = len(SeedHouses(w.grid, w.rng, p.InitialHouseChance))

	w.status.Houses = w.grid.HouseCount()
	w.status.Population = w.countPopulation()
	return r
}

func (w *World) countPopulation() int {
	total := 0
	for _, h := range w.grid.Houses() {
		total += h.Occupants()
	}
	return total
}

var tileGlyphs = [core.TileTypeCount]byte{'.', '~', '#', 'H'}

// String renders the grid as ASCII, one row per line.
func (w *World) String() string {
	var b strings.Builder
	b.Grow((w.grid.W + 1) * w.grid.H)
	for y := 0; y < w.grid.H; y++ {
		for x := 0; x < w.grid.W; x++ {
			b.WriteByte(tileGlyphs[w.grid.TileType(x, y)])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
