// Package ui compiles overlay widgets (menus and graphs) into bitmaps the
// presentation layer draws on top of the tile grid.
package ui

import "image"

// Layer is a compiled overlay bitmap and its screen rectangle. Updated is set
// when the bitmap was (re)compiled since the previous Prepare.
type Layer struct {
	Rect    image.Rectangle
	Image   *image.RGBA
	Updated bool
}

type compiled struct {
	img   *image.RGBA
	fresh bool
}

type menuEntry struct {
	menu *Menu
	compiled
}

type graphEntry struct {
	graph *Graph
	compiled
}

// Overlays is the stack of pushed menus and graphs. Menus with dynamic text
// are recompiled every frame; static menus and graphs only when pushed or
// replaced.
type Overlays struct {
	menus    []menuEntry
	graphs   []graphEntry
	layers   []Layer
	compiles int
}

// NewOverlays returns an empty overlay stack.
func NewOverlays() *Overlays { return &Overlays{} }

// PushMenu compiles m and puts it on top of the menu stack.
func (o *Overlays) PushMenu(m *Menu) {
	o.menus = append(o.menus, menuEntry{menu: m, compiled: o.compileMenu(m)})
}

// PopMenu removes the top menu. It reports false when no menu is pushed.
func (o *Overlays) PopMenu() bool {
	if len(o.menus) == 0 {
		return false
	}
	o.menus[len(o.menus)-1] = menuEntry{}
	o.menus = o.menus[:len(o.menus)-1]
	return true
}

// PushGraph compiles g and puts it on top of the graph stack.
func (o *Overlays) PushGraph(g *Graph) {
	o.graphs = append(o.graphs, graphEntry{graph: g, compiled: o.compileGraph(g)})
}

// PopGraph removes the top graph. It reports false when no graph is pushed.
func (o *Overlays) PopGraph() bool {
	if len(o.graphs) == 0 {
		return false
	}
	o.graphs[len(o.graphs)-1] = graphEntry{}
	o.graphs = o.graphs[:len(o.graphs)-1]
	return true
}

// ReplaceGraph swaps the top graph for g and recompiles it. Passing the graph
// already on top refreshes it after its series changed. It reports false when
// no graph is pushed.
func (o *Overlays) ReplaceGraph(g *Graph) bool {
	if len(o.graphs) == 0 {
		return false
	}
	o.graphs[len(o.graphs)-1] = graphEntry{graph: g, compiled: o.compileGraph(g)}
	return true
}

// Menus returns the number of pushed menus.
func (o *Overlays) Menus() int { return len(o.menus) }

// Graphs returns the number of pushed graphs.
func (o *Overlays) Graphs() int { return len(o.graphs) }

// Compiles returns how many bitmaps have been compiled so far.
func (o *Overlays) Compiles() int { return o.compiles }

// Prepare recompiles dynamic menus and returns every layer in draw order:
// graphs first, then menus, each bottom of stack first. The slice is reused
// by the next call.
func (o *Overlays) Prepare() []Layer {
	o.layers = o.layers[:0]
	for i := range o.graphs {
		e := &o.graphs[i]
		o.layers = append(o.layers, e.layer(e.graph.X, e.graph.Y))
	}
	for i := range o.menus {
		e := &o.menus[i]
		if e.menu.Dynamic() {
			e.compiled = o.compileMenu(e.menu)
		}
		o.layers = append(o.layers, e.layer(e.menu.X, e.menu.Y))
	}
	return o.layers
}

func (c *compiled) layer(x, y int) Layer {
	l := Layer{Rect: c.img.Bounds().Add(image.Pt(x, y)), Image: c.img, Updated: c.fresh}
	c.fresh = false
	return l
}

func (o *Overlays) compileMenu(m *Menu) compiled {
	o.compiles++
	return compiled{img: CompileMenu(m), fresh: true}
}

func (o *Overlays) compileGraph(g *Graph) compiled {
	o.compiles++
	return compiled{img: CompileGraph(g), fresh: true}
}
