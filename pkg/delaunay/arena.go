package delaunay

import (
	"slices"

	"github.com/chazu/medial/pkg/geom"
)

// faceKey identifies a cell face by its sorted vertex indices. Indices are
// exact, so faces shared by two cells always collide regardless of the
// floating-point values of their corners.
type faceKey [3]int32

func makeFaceKey(a, b, c int32) faceKey {
	if b < a {
		a, b = b, a
	}
	if c < b {
		b, c = c, b
		if b < a {
			a, b = b, a
		}
	}
	return faceKey{a, b, c}
}

func compareFaceKeys(x, y faceKey) int {
	for i := range x {
		if x[i] != y[i] {
			if x[i] < y[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// cellFaces lists the corner triples of the four faces of a cell,
// omitting one corner each.
var cellFaces = [4][3]int{
	{0, 1, 2},
	{0, 1, 3},
	{0, 2, 3},
	{1, 2, 3},
}

type cell struct {
	v    [4]int32
	tet  geom.Tetrahedron
	live bool
}

func (c *cell) faces() [4]faceKey {
	var out [4]faceKey
	for i, f := range cellFaces {
		out[i] = makeFaceKey(c.v[f[0]], c.v[f[1]], c.v[f[2]])
	}
	return out
}

// touches reports whether any corner index is below limit.
func (c *cell) touches(limit int32) bool {
	for _, v := range c.v {
		if v < limit {
			return true
		}
	}
	return false
}

// arena stores cells by index with a live flag. Dead slots are reused.
type arena struct {
	cells []cell
	free  []int32
	live  int
}

func (a *arena) add(c cell) {
	c.live = true
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		a.cells[idx] = c
		return
	}
	a.cells = append(a.cells, c)
}

func (a *arena) kill(idx int32) {
	if !a.cells[idx].live {
		return
	}
	a.cells[idx].live = false
	a.live--
	a.free = append(a.free, idx)
}

// holeSet is the cavity boundary. Inserting a face already present removes
// it, so faces shared by two removed cells cancel out.
type holeSet map[faceKey]struct{}

func (h holeSet) toggle(k faceKey) {
	if _, ok := h[k]; ok {
		delete(h, k)
		return
	}
	h[k] = struct{}{}
}

// merge XORs o into h.
func (h holeSet) merge(o holeSet) {
	for k := range o {
		h.toggle(k)
	}
}

func (h holeSet) clear() {
	for k := range h {
		delete(h, k)
	}
}

// sorted returns the faces in a fixed order so cell creation does not depend
// on map iteration order.
func (h holeSet) sorted() []faceKey {
	keys := make([]faceKey, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareFaceKeys)
	return keys
}
