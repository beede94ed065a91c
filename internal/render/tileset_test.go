package render

import (
	"bytes"
	"image"
	"strings"
	"testing"
	"testing/fstest"

	"golang.org/x/image/bmp"

	"tiletown/internal/core"
)

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestLoadTilesetFromBMP(t *testing.T) {
	solid := solidTileset(6, 5)
	fsys := fstest.MapFS{}
	for tt := core.TileType(0); tt < core.TileTypeCount; tt++ {
		fsys["assets/"+DefaultTilePaths[tt]] = &fstest.MapFile{Data: encodeBMP(t, solid.Image(tt))}
	}

	ts, err := LoadTileset(BMPLoader{FS: fsys}, "assets", DefaultTilePaths)
	if err != nil {
		t.Fatalf("LoadTileset: %v", err)
	}
	water := ts.Image(core.TileWater)
	if b := water.Bounds(); b.Dx() != 6 || b.Dy() != 5 {
		t.Fatalf("water bitmap bounds %v", b)
	}
	r, g, b, _ := water.At(2, 2).RGBA()
	want := solidColors[core.TileWater]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("decoded water pixel (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestLoadTilesetReportsMissingAsset(t *testing.T) {
	fsys := fstest.MapFS{
		"grass.bmp": &fstest.MapFile{Data: encodeBMP(t, solidTileset(2, 2).Image(core.TileGrass))},
	}
	_, err := LoadTileset(BMPLoader{FS: fsys}, ".", DefaultTilePaths)
	if err == nil {
		t.Fatal("expected failure for missing water.bmp")
	}
	if !strings.Contains(err.Error(), "water.bmp") {
		t.Fatalf("error %q should name the missing asset", err)
	}
}

func TestLoadTilesetRejectsCorruptBitmap(t *testing.T) {
	fsys := fstest.MapFS{}
	for tt := core.TileType(0); tt < core.TileTypeCount; tt++ {
		fsys[DefaultTilePaths[tt]] = &fstest.MapFile{Data: []byte("not a bitmap")}
	}
	if _, err := LoadTileset(BMPLoader{FS: fsys}, ".", DefaultTilePaths); err == nil {
		t.Fatal("expected decode failure")
	}
}

func TestProceduralTilesetDeterministic(t *testing.T) {
	a := ProceduralTileset(5, 32, 24)
	b := ProceduralTileset(5, 32, 24)
	for tt := core.TileType(0); tt < core.TileTypeCount; tt++ {
		ai := a.Image(tt).(*image.RGBA)
		bi := b.Image(tt).(*image.RGBA)
		if ai.Bounds() != image.Rect(0, 0, 32, 24) {
			t.Fatalf("%v bitmap bounds %v", tt, ai.Bounds())
		}
		if !bytes.Equal(ai.Pix, bi.Pix) {
			t.Fatalf("%v bitmap differs for the same seed", tt)
		}
	}
	if bytes.Equal(a.Image(core.TileGrass).(*image.RGBA).Pix, a.Image(core.TileWater).(*image.RGBA).Pix) {
		t.Fatal("grass and water bitmaps should differ")
	}
}
