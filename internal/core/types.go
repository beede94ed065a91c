package core

import "fmt"

// Size describes the dimensions of a tile grid.
type Size struct {
	W int
	H int
}

// TileType enumerates the built-in tile kinds.
type TileType uint8

const (
	TileGrass TileType = iota
	TileWater
	TileRoad
	TileHouse

	// TileTypeCount is the number of tile kinds; it sizes per-type tables.
	TileTypeCount
)

var tileTypeNames = [TileTypeCount]string{"grass", "water", "road", "house"}

// String returns the lower-case tile name.
func (t TileType) String() string {
	if t < TileTypeCount {
		return tileTypeNames[t]
	}
	return fmt.Sprintf("tile(%d)", uint8(t))
}

// NoHouse marks a tile that does not reference an entry in the house list.
const NoHouse = -1

// Tile is a single grid cell. HouseIndex is NoHouse unless Type is TileHouse.
type Tile struct {
	Type       TileType
	HouseIndex int
}

// Limits on per-house occupancy.
const (
	MaxAdults   = 2
	MaxChildren = 2
)

// House tracks the occupants living on a house tile.
type House struct {
	Adults   int
	Children int
}

// Occupants returns adults plus children.
func (h House) Occupants() int { return h.Adults + h.Children }
