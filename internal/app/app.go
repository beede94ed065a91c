//go:build ebiten

package app

import (
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a Session to the ebiten.Game interface. Chunk and overlay
// bitmaps are uploaded to GPU images only when they were recomposited.
type Game struct {
	session *Session
	logger  *log.Logger

	chunks []*ebiten.Image
	layers []*ebiten.Image
}

// New constructs a Game for the provided session.
func New(session *Session, logger *log.Logger) *Game {
	return &Game{session: session, logger: logger}
}

// Reset regenerates the world with the provided seed.
func (g *Game) Reset(seed int64) {
	if err := g.session.Reset(seed); err != nil {
		g.logger.Error("reset failed", "seed", seed, "err", err)
		return
	}
	g.chunks = nil
	g.layers = nil
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.session.TogglePause()
		g.logger.Debug("pause toggled", "paused", g.session.Paused())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.session.Seed())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	g.session.Advance(inpututil.IsKeyJustPressed(ebiten.KeyN))
	return nil
}

// Draw renders the chunk bitmaps followed by the overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	regions, layers := g.session.Frame()

	if len(g.chunks) != len(regions) {
		g.chunks = make([]*ebiten.Image, len(regions))
	}
	for i, r := range regions {
		g.chunks[i] = upload(g.chunks[i], r.Image, r.Updated)
		blit(screen, g.chunks[i], r.Rect.Min)
	}

	if len(g.layers) != len(layers) {
		g.layers = make([]*ebiten.Image, len(layers))
	}
	for i, l := range layers {
		g.layers[i] = upload(g.layers[i], l.Image, l.Updated)
		blit(screen, g.layers[i], l.Rect.Min)
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.session.Cache().PixelSize()
}

func upload(dst *ebiten.Image, src *image.RGBA, updated bool) *ebiten.Image {
	b := src.Bounds()
	if dst != nil && !updated && dst.Bounds().Size() == b.Size() {
		return dst
	}
	if dst == nil || dst.Bounds().Size() != b.Size() {
		if dst != nil {
			dst.Dispose()
		}
		dst = ebiten.NewImage(b.Dx(), b.Dy())
	}
	dst.WritePixels(src.Pix)
	return dst
}

func blit(screen, img *ebiten.Image, at image.Point) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(at.X), float64(at.Y))
	screen.DrawImage(img, op)
}
