package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"tiletown/internal/core"
)

var solidColors = [core.TileTypeCount]color.RGBA{
	core.TileGrass: {R: 0, G: 200, B: 0, A: 255},
	core.TileWater: {R: 0, G: 0, B: 200, A: 255},
	core.TileRoad:  {R: 90, G: 90, B: 90, A: 255},
	core.TileHouse: {R: 200, G: 0, B: 0, A: 255},
}

func solidTileset(w, h int) *Tileset {
	ts := &Tileset{}
	for t := range solidColors {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		fillRect(img, img.Bounds(), solidColors[t])
		ts.images[t] = img
	}
	return ts
}

func newTestCache(t *testing.T, g *core.Grid) *Cache {
	t.Helper()
	c, err := NewCache(g, solidTileset(4, 3), 4, 4, 3)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	g.SetObserver(c)
	return c
}

func snapshot(regions []Region) [][]byte {
	out := make([][]byte, len(regions))
	for i, r := range regions {
		out[i] = append([]byte(nil), r.Image.Pix...)
	}
	return out
}

func TestNewCacheRejectsUnevenGrid(t *testing.T) {
	if _, err := NewCache(core.NewGrid(30, 32), solidTileset(1, 1), 4, 1, 1); err == nil {
		t.Fatal("expected error for 30 columns split into 4 chunks")
	}
	if _, err := NewCache(core.NewGrid(32, 32), solidTileset(1, 1), 0, 1, 1); err == nil {
		t.Fatal("expected error for zero chunks")
	}
}

func TestFirstFrameCompositesEveryChunk(t *testing.T) {
	g := core.NewGrid(32, 32)
	c := newTestCache(t, g)
	if st := c.Stats(); st.Dirty != 16 {
		t.Fatalf("new chunks must start dirty, got %d of %d", st.Dirty, st.Chunks)
	}
	regions := c.PrepareFrame()
	if len(regions) != 16 {
		t.Fatalf("expected 16 regions, got %d", len(regions))
	}
	for _, r := range regions {
		if !r.Updated {
			t.Fatalf("chunk %d not recomposited on first frame", r.Index)
		}
		if r.Rect.Dx() != 8*4 || r.Rect.Dy() != 8*3 {
			t.Fatalf("chunk %d rect %v, want 32x24 px", r.Index, r.Rect)
		}
	}
	if got := regions[5].Rect.Min; got != image.Pt(32, 24) {
		t.Fatalf("chunk 5 origin %v, want (32,24)", got)
	}
	if st := c.Stats(); st.Recomposited != 16 || st.Dirty != 0 {
		t.Fatalf("stats after first frame: %+v", st)
	}
}

func TestCleanChunksAreBitIdentical(t *testing.T) {
	g := core.NewGrid(32, 32)
	c := newTestCache(t, g)
	g.SetType(3, 3, core.TileWater)
	first := snapshot(c.PrepareFrame())

	for i := 0; i < 3; i++ {
		regions := c.PrepareFrame()
		for j, r := range regions {
			if r.Updated {
				t.Fatalf("frame %d: clean chunk %d recomposited", i, j)
			}
			if !bytes.Equal(first[j], r.Image.Pix) {
				t.Fatalf("frame %d: chunk %d bitmap changed without a tile mutation", i, j)
			}
		}
	}
}

func TestNotifyDirtiesOnlyOwningChunk(t *testing.T) {
	g := core.NewGrid(32, 32)
	c := newTestCache(t, g)
	before := snapshot(c.PrepareFrame())

	g.SetType(9, 3, core.TileRoad)
	if c.ChunkIndex(9, 3) != 1 {
		t.Fatalf("tile (9,3) should belong to chunk 1, got %d", c.ChunkIndex(9, 3))
	}
	for i := 0; i < c.Len(); i++ {
		if c.Dirty(i) != (i == 1) {
			t.Fatalf("chunk %d dirty=%v after mutating (9,3)", i, c.Dirty(i))
		}
	}

	regions := c.PrepareFrame()
	if st := c.Stats(); st.Recomposited != 1 || st.Total != 17 {
		t.Fatalf("stats %+v, want 1 recomposited and 17 total", st)
	}
	for i, r := range regions {
		if i == 1 {
			continue
		}
		if !bytes.Equal(before[i], r.Image.Pix) {
			t.Fatalf("untouched chunk %d changed", i)
		}
	}

	// (9,3) is local tile (1,3) of chunk 1: pixel origin (4,9).
	if got := regions[1].Image.RGBAAt(4, 9); got != solidColors[core.TileRoad] {
		t.Fatalf("road tile pixel = %v, want %v", got, solidColors[core.TileRoad])
	}
	if got := regions[1].Image.RGBAAt(0, 0); got != solidColors[core.TileGrass] {
		t.Fatalf("grass tile pixel = %v, want %v", got, solidColors[core.TileGrass])
	}
}

func TestHouseCreationNotifiesCache(t *testing.T) {
	g := core.NewGrid(32, 32)
	c := newTestCache(t, g)
	c.PrepareFrame()
	g.AddHouse(31, 31, core.House{})
	if !c.Dirty(15) {
		t.Fatal("adding a house must dirty its chunk")
	}
	regions := c.PrepareFrame()
	if got := regions[15].Image.RGBAAt(7*4, 7*3); got != solidColors[core.TileHouse] {
		t.Fatalf("house pixel = %v", got)
	}
}

func TestNotifyOutsideGridPanics(t *testing.T) {
	c := newTestCache(t, core.NewGrid(32, 32))
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range tile")
		}
	}()
	c.NotifyTileChanged(32, 0)
}

func TestMarkAllDirty(t *testing.T) {
	c := newTestCache(t, core.NewGrid(32, 32))
	c.PrepareFrame()
	c.MarkAllDirty()
	c.PrepareFrame()
	if st := c.Stats(); st.Recomposited != st.Chunks {
		t.Fatalf("expected every chunk recomposited, got %+v", st)
	}
}
