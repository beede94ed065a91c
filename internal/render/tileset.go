package render

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"path"

	opensimplex "github.com/ojrac/opensimplex-go"
	"golang.org/x/image/bmp"

	"tiletown/internal/core"
)

// AssetLoader resolves a bitmap by path.
type AssetLoader interface {
	Load(path string) (image.Image, error)
}

// BMPLoader decodes Windows bitmaps from a filesystem.
type BMPLoader struct {
	FS fs.FS
}

// Load opens and decodes the bitmap at p.
func (l BMPLoader) Load(p string) (image.Image, error) {
	f, err := l.FS.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	return img, nil
}

// DefaultTilePaths names the bitmap for each tile type, relative to the asset root.
var DefaultTilePaths = [core.TileTypeCount]string{
	core.TileGrass: "grass.bmp",
	core.TileWater: "water.bmp",
	core.TileRoad:  "road.bmp",
	core.TileHouse: "house.bmp",
}

// Tileset maps each tile type to the bitmap drawn for it.
type Tileset struct {
	images [core.TileTypeCount]image.Image
}

// LoadTileset loads one bitmap per tile type. The first failure is returned.
func LoadTileset(loader AssetLoader, dir string, paths [core.TileTypeCount]string) (*Tileset, error) {
	ts := &Tileset{}
	for t := core.TileType(0); t < core.TileTypeCount; t++ {
		p := path.Join(dir, paths[t])
		img, err := loader.Load(p)
		if err != nil {
			return nil, fmt.Errorf("load %s tile from %s: %w", t, p, err)
		}
		if b := img.Bounds(); b.Empty() {
			return nil, fmt.Errorf("load %s tile from %s: empty bitmap", t, p)
		}
		ts.images[t] = img
	}
	return ts, nil
}

// Image returns the bitmap for tile type t.
func (ts *Tileset) Image(t core.TileType) image.Image {
	if t >= core.TileTypeCount {
		panic(fmt.Sprintf("render: no bitmap for %v", t))
	}
	return ts.images[t]
}

var tileBase = [core.TileTypeCount]color.RGBA{
	core.TileGrass: {R: 78, G: 148, B: 62, A: 255},
	core.TileWater: {R: 48, G: 104, B: 190, A: 255},
	core.TileRoad:  {R: 112, G: 108, B: 100, A: 255},
	core.TileHouse: {R: 176, G: 92, B: 64, A: 255},
}

// ProceduralTileset draws a built-in w×h bitmap per tile type, textured with
// simplex noise so adjacent tiles of one type do not look flat.
func ProceduralTileset(seed int64, w, h int) *Tileset {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	noise := opensimplex.NewNormalized(seed)
	ts := &Tileset{}
	for t := core.TileType(0); t < core.TileTypeCount; t++ {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		base := tileBase[t]
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				n := noise.Eval3(float64(x)*0.35, float64(y)*0.35, float64(t)*7.1)
				img.SetRGBA(x, y, shade(base, 0.8+0.4*n))
			}
		}
		switch t {
		case core.TileRoad:
			stripe := color.RGBA{R: 222, G: 206, B: 120, A: 255}
			th := max(h/16, 1)
			y0 := (h - th) / 2
			fillRect(img, image.Rect(0, y0, w, y0+th), blendColors(base, stripe, 0.7))
		case core.TileHouse:
			roof := color.RGBA{R: 96, G: 40, B: 32, A: 255}
			fillRect(img, image.Rect(w/6, 0, w-w/6, h/3), roof)
			door := color.RGBA{R: 60, G: 40, B: 28, A: 255}
			fillRect(img, image.Rect(w/2-w/10, h-h/3, w/2+w/10, h), door)
		}
		ts.images[t] = img
	}
	return ts
}
