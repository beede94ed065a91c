package core

import "fmt"

// TileObserver is notified after every tile write. The render cache uses it
// to invalidate the chunk owning (x, y).
type TileObserver interface {
	NotifyTileChanged(x, y int)
}

// Grid stores a fixed W×H array of tiles in row-major order together with the
// append-only house list the House tiles index into.
type Grid struct {
	W, H     int
	tiles    []Tile
	houses   []House
	observer TileObserver
}

// NewGrid allocates an all-grass grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	g := &Grid{W: w, H: h, tiles: make([]Tile, w*h)}
	for i := range g.tiles {
		g.tiles[i] = Tile{Type: TileGrass, HouseIndex: NoHouse}
	}
	return g
}

// Size reports the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.W, H: g.H} }

// SetObserver installs the observer notified on every tile write.
func (g *Grid) SetObserver(o TileObserver) { g.observer = o }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Index returns the linear slice index for coordinates (x, y). It panics when
// the coordinates are outside the grid.
func (g *Grid) Index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("core: tile (%d,%d) outside %dx%d grid", x, y, g.W, g.H))
	}
	return y*g.W + x
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) Tile { return g.tiles[g.Index(x, y)] }

// TileType returns the type of the tile at (x, y).
func (g *Grid) TileType(x, y int) TileType { return g.tiles[g.Index(x, y)].Type }

// SetType changes a non-house tile to another non-house type. House tiles are
// permanent and house creation goes through AddHouse, so both cases panic.
func (g *Grid) SetType(x, y int, t TileType) {
	idx := g.Index(x, y)
	if t == TileHouse {
		panic("core: SetType cannot create houses; use AddHouse")
	}
	if g.tiles[idx].Type == TileHouse {
		panic(fmt.Sprintf("core: tile (%d,%d) is a house and cannot be replaced", x, y))
	}
	g.tiles[idx] = Tile{Type: t, HouseIndex: NoHouse}
	g.notify(x, y)
}

// AddHouse turns the tile at (x, y) into a house backed by a new entry at the
// end of the house list and returns its index.
func (g *Grid) AddHouse(x, y int, h House) int {
	idx := g.Index(x, y)
	if g.tiles[idx].Type == TileHouse {
		panic(fmt.Sprintf("core: tile (%d,%d) already holds house %d", x, y, g.tiles[idx].HouseIndex))
	}
	hi := len(g.houses)
	g.houses = append(g.houses, h)
	g.tiles[idx] = Tile{Type: TileHouse, HouseIndex: hi}
	g.notify(x, y)
	return hi
}

// House returns a pointer to the house with the given index so the simulator
// can update occupancy in place.
func (g *Grid) House(i int) *House {
	if i < 0 || i >= len(g.houses) {
		panic(fmt.Sprintf("core: house index %d outside [0,%d)", i, len(g.houses)))
	}
	return &g.houses[i]
}

// Houses exposes the house list in creation order.
func (g *Grid) Houses() []House { return g.houses }

// HouseCount returns the number of houses created so far.
func (g *Grid) HouseCount() int { return len(g.houses) }

var neighbors4 = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// HasNeighbor reports whether any in-bounds 4-neighbour of (x, y) has type t.
func (g *Grid) HasNeighbor(x, y int, t TileType) bool {
	for _, d := range neighbors4 {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) && g.tiles[ny*g.W+nx].Type == t {
			return true
		}
	}
	return false
}

// Count returns how many tiles have type t.
func (g *Grid) Count(t TileType) int {
	n := 0
	for _, tile := range g.tiles {
		if tile.Type == t {
			n++
		}
	}
	return n
}

func (g *Grid) notify(x, y int) {
	if g.observer != nil {
		g.observer.NotifyTileChanged(x, y)
	}
}
