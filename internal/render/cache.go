// Package render composes the tile grid into cached chunk bitmaps.
package render

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"tiletown/internal/core"
)

// TileSource is the read side of the grid the cache draws from.
type TileSource interface {
	Size() core.Size
	TileType(x, y int) core.TileType
}

// Region is one chunk bitmap and where it belongs on screen. Updated is set
// when the bitmap was recomposited during the PrepareFrame that returned it.
type Region struct {
	Index   int
	Rect    image.Rectangle
	Image   *image.RGBA
	Updated bool
}

// Stats reports recomposition work.
type Stats struct {
	Chunks       int
	Dirty        int
	Recomposited int
	Total        int
}

type chunk struct {
	tiles image.Rectangle
	rect  image.Rectangle
	img   *image.RGBA
	dirty bool
}

// Cache partitions the grid into a fixed G×G array of chunks, each holding a
// composed bitmap of its tiles and a dirty flag. A dirty chunk's bitmap is
// stale; a clean chunk's bitmap matches the grid.
type Cache struct {
	src          TileSource
	tiles        *Tileset
	tileW, tileH int
	cols, rows   int
	chunkW       int
	chunkH       int
	chunks       []chunk
	regions      []Region

	recomposited int
	total        int
}

// NewCache builds a cache with perSide×perSide chunks over src. Tiles are
// drawn tileW×tileH pixels. The grid dimensions must divide evenly.
func NewCache(src TileSource, tiles *Tileset, perSide, tileW, tileH int) (*Cache, error) {
	size := src.Size()
	if perSide <= 0 || tileW <= 0 || tileH <= 0 {
		return nil, fmt.Errorf("render: invalid cache geometry %d chunks of %dx%d px tiles", perSide, tileW, tileH)
	}
	if size.W%perSide != 0 || size.H%perSide != 0 {
		return nil, fmt.Errorf("render: %dx%d grid does not split into %dx%d chunks", size.W, size.H, perSide, perSide)
	}
	if tiles == nil {
		return nil, fmt.Errorf("render: nil tileset")
	}
	c := &Cache{
		src:    src,
		tiles:  tiles,
		tileW:  tileW,
		tileH:  tileH,
		cols:   perSide,
		rows:   perSide,
		chunkW: size.W / perSide,
		chunkH: size.H / perSide,
	}
	c.chunks = make([]chunk, c.cols*c.rows)
	c.regions = make([]Region, len(c.chunks))
	for cy := 0; cy < c.rows; cy++ {
		for cx := 0; cx < c.cols; cx++ {
			tr := image.Rect(cx*c.chunkW, cy*c.chunkH, (cx+1)*c.chunkW, (cy+1)*c.chunkH)
			pr := image.Rect(tr.Min.X*tileW, tr.Min.Y*tileH, tr.Max.X*tileW, tr.Max.Y*tileH)
			c.chunks[cy*c.cols+cx] = chunk{
				tiles: tr,
				rect:  pr,
				img:   image.NewRGBA(image.Rect(0, 0, pr.Dx(), pr.Dy())),
				dirty: true,
			}
		}
	}
	return c, nil
}

// ChunkIndex returns the index of the chunk owning tile (x, y).
func (c *Cache) ChunkIndex(x, y int) int {
	size := c.src.Size()
	if x < 0 || x >= size.W || y < 0 || y >= size.H {
		panic(fmt.Sprintf("render: tile (%d,%d) outside %dx%d grid", x, y, size.W, size.H))
	}
	return (y/c.chunkH)*c.cols + x/c.chunkW
}

// NotifyTileChanged marks the chunk owning (x, y) dirty.
func (c *Cache) NotifyTileChanged(x, y int) {
	c.chunks[c.ChunkIndex(x, y)].dirty = true
}

// MarkAllDirty forces every chunk to be recomposited on the next frame.
func (c *Cache) MarkAllDirty() {
	for i := range c.chunks {
		c.chunks[i].dirty = true
	}
}

// Dirty reports whether chunk i is stale.
func (c *Cache) Dirty(i int) bool { return c.chunks[i].dirty }

// Len returns the number of chunks.
func (c *Cache) Len() int { return len(c.chunks) }

// PixelSize returns the full composed size in pixels.
func (c *Cache) PixelSize() (int, int) {
	size := c.src.Size()
	return size.W * c.tileW, size.H * c.tileH
}

// PrepareFrame recomposites every dirty chunk and returns all chunk regions.
// Clean chunks are returned untouched. The slice is reused by the next call.
func (c *Cache) PrepareFrame() []Region {
	c.recomposited = 0
	for i := range c.chunks {
		ch := &c.chunks[i]
		updated := false
		if ch.dirty {
			c.composite(ch)
			ch.dirty = false
			updated = true
			c.recomposited++
		}
		c.regions[i] = Region{Index: i, Rect: ch.rect, Image: ch.img, Updated: updated}
	}
	c.total += c.recomposited
	return c.regions
}

func (c *Cache) composite(ch *chunk) {
	for ty := ch.tiles.Min.Y; ty < ch.tiles.Max.Y; ty++ {
		for tx := ch.tiles.Min.X; tx < ch.tiles.Max.X; tx++ {
			src := c.tiles.Image(c.src.TileType(tx, ty))
			lx := (tx - ch.tiles.Min.X) * c.tileW
			ly := (ty - ch.tiles.Min.Y) * c.tileH
			dst := image.Rect(lx, ly, lx+c.tileW, ly+c.tileH)
			xdraw.NearestNeighbor.Scale(ch.img, dst, src, src.Bounds(), xdraw.Src, nil)
		}
	}
}

// Stats reports the chunk count, chunks currently dirty, chunks
// recomposited by the last PrepareFrame and the running total.
func (c *Cache) Stats() Stats {
	dirty := 0
	for i := range c.chunks {
		if c.chunks[i].dirty {
			dirty++
		}
	}
	return Stats{Chunks: len(c.chunks), Dirty: dirty, Recomposited: c.recomposited, Total: c.total}
}
