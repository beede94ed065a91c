package town

import (
	"math"

	"tiletown/internal/core"
)

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	dx := float64(q.X - p.X)
	dy := float64(q.Y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

type lakeStep struct {
	x, y int
	p    float64
}

// GenerateLake grows a lake from (x, y) with a probability-gated flood fill.
// Each visited cell draws once; it becomes Water when the draw is <= the
// current probability, the cell is on the grid and it is not already Water.
// A converted cell offers its four neighbours the same test at p*decay.
// Steps whose probability falls below floor are discarded without drawing.
// Cells are visited in the same depth-first order as a recursive fill that
// tries left, right, up, down. It returns the number of tiles converted.
func GenerateLake(g *core.Grid, rng core.Source, x, y int, decay, floor float64) int {
	if decay <= 0 || decay >= 1 {
		panic("town: lake decay must be in (0,1)")
	}
	converted := 0
	stack := []lakeStep{{x: x, y: y, p: 1}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.p < floor {
			continue
		}
		if rng.Float64() > s.p {
			continue
		}
		if !g.InBounds(s.x, s.y) || g.TileType(s.x, s.y) == core.TileWater {
			continue
		}
		g.SetType(s.x, s.y, core.TileWater)
		converted++
		np := s.p * decay
		// Pushed in reverse so left is popped first.
		stack = append(stack,
			lakeStep{x: s.x, y: s.y + 1, p: np},
			lakeStep{x: s.x, y: s.y - 1, p: np},
			lakeStep{x: s.x + 1, y: s.y, p: np},
			lakeStep{x: s.x - 1, y: s.y, p: np},
		)
	}
	return converted
}

// RandomPoint picks a tile uniformly.
func RandomPoint(g *core.Grid, rng core.Source) Point {
	return Point{X: rng.IntN(g.W), Y: rng.IntN(g.H)}
}

// PickRoadEndpoints chooses A uniformly and resamples B until it lies at least
// minDist away. After maxAttempts failed draws B falls back to the grid corner
// farthest from A; fallback reports whether that happened.
func PickRoadEndpoints(g *core.Grid, rng core.Source, minDist float64, maxAttempts int) (a, b Point, fallback bool) {
	a = RandomPoint(g, rng)
	for i := 0; i < maxAttempts; i++ {
		b = RandomPoint(g, rng)
		if a.Distance(b) >= minDist {
			return a, b, false
		}
	}
	return a, farthestCorner(g, a), true
}

func farthestCorner(g *core.Grid, a Point) Point {
	corners := [4]Point{{0, 0}, {g.W - 1, 0}, {0, g.H - 1}, {g.W - 1, g.H - 1}}
	best := corners[0]
	for _, c := range corners[1:] {
		if a.Distance(c) > a.Distance(best) {
			best = c
		}
	}
	return best
}

// DrawRoad marks an L-shaped road: a horizontal run along A's row spanning
// both x coordinates, then a vertical run along B's column spanning both y
// coordinates. The runs meet at (b.X, a.Y).
func DrawRoad(g *core.Grid, a, b Point) int {
	marked := 0
	x0, x1 := minMax(a.X, b.X)
	for x := x0; x <= x1; x++ {
		g.SetType(x, a.Y, core.TileRoad)
		marked++
	}
	y0, y1 := minMax(a.Y, b.Y)
	for y := y0; y <= y1; y++ {
		if y == a.Y {
			continue
		}
		g.SetType(b.X, y, core.TileRoad)
		marked++
	}
	return marked
}

// SeedHouses sweeps the grid row by row and turns each Grass tile with a Road
// neighbour into a house with two adults with the given chance. It returns
// the indices of the houses created.
func SeedHouses(g *core.Grid, rng core.Source, chance float64) []int {
	return spawnHouses(g, rng, chance, core.House{Adults: core.MaxAdults})
}

func spawnHouses(g *core.Grid, rng core.Source, chance float64, h core.House) []int {
	var created []int
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.TileType(x, y) != core.TileGrass || !g.HasNeighbor(x, y, core.TileRoad) {
				continue
			}
			if rng.Float64() < chance {
				created = append(created, g.AddHouse(x, y, h))
			}
		}
	}
	return created
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
