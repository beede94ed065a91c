package town

import "tiletown/internal/core"

// TickResult reports what a single Step changed.
type TickResult struct {
	Tick       int
	Population int
	Emigration int
	NewHouses  int
	Sampled    bool
}

// Step advances the simulation by one tick: the occupancy sweep over all
// houses, then house growth along the road, then sampling.
func (w *World) Step() TickResult {
	population, emigration := w.updateOccupancy()
	grown := spawnHouses(w.grid, w.rng, w.cfg.Params.GrowthChance, core.House{})

	w.status.Tick++
	w.status.Population = population
	w.status.Emigration = emigration
	w.status.Houses = w.grid.HouseCount()

	res := TickResult{
		Tick:       w.status.Tick,
		Population: population,
		Emigration: emigration,
		NewHouses:  len(grown),
	}
	if w.status.Tick%w.cfg.Params.SampleFrequency == 0 {
		w.history.Append(float64(population))
		res.Sampled = true
	}
	return res
}

// updateOccupancy walks houses in creation order with one shared migration
// pool. A vacancy only absorbs migrants released by houses earlier in the
// same pass; whatever is left in the pool at the end emigrates.
func (w *World) updateOccupancy() (population, emigration int) {
	p := w.cfg.Params
	pool := 0
	for i := 0; i < w.grid.HouseCount(); i++ {
		h := w.grid.House(i)
		if h.Adults < core.MaxAdults && pool > 0 {
			h.Adults++
			pool--
		}
		if h.Children > 0 && w.rng.Float64() < p.MoveOutChance {
			h.Children--
			pool++
		}
		if h.Adults == core.MaxAdults && h.Children < core.MaxChildren && w.rng.Float64() < p.BirthChance {
			h.Children++
		}
		population += h.Occupants()
	}
	return population, pool
}
