package meshio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/chazu/medial/pkg/geom"
	"github.com/pkg/errors"
)

type writer struct {
	w   *bufio.Writer
	buf []byte
}

func newWriter(w io.Writer) *writer {
	return &writer{w: bufio.NewWriter(w)}
}

func (w *writer) vertex(p geom.Point) {
	b := append(w.buf[:0], 'v')
	for _, c := range [3]float64{p.X, p.Y, p.Z} {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, c, 'g', -1, 64)
	}
	b = append(b, '\n')
	w.buf = b
	w.w.Write(b)
}

func (w *writer) record(tag byte, idx ...int) {
	b := append(w.buf[:0], tag)
	for _, i := range idx {
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(i+1), 10)
	}
	b = append(b, '\n')
	w.buf = b
	w.w.Write(b)
}

func (w *writer) flush(what string) error {
	return errors.Wrapf(w.w.Flush(), "meshio: write %s", what)
}

// Write writes m as v and f records.
func Write(out io.Writer, m *Mesh) error {
	w := newWriter(out)
	for _, p := range m.Points {
		w.vertex(p)
	}
	for _, t := range m.Triangles {
		w.record('f', t[0], t[1], t[2])
	}
	return w.flush("mesh")
}

// WriteSkeleton writes medial-axis edges as v records and l segments.
// Shared endpoints are written once.
func WriteSkeleton(out io.Writer, edges []geom.Edge) error {
	w := newWriter(out)
	index := make(map[geom.PointKey]int)
	vertex := func(p geom.Point) int {
		k := p.Key()
		if i, ok := index[k]; ok {
			return i
		}
		i := len(index)
		index[k] = i
		w.vertex(p)
		return i
	}

	links := make([][2]int, len(edges))
	for i, e := range edges {
		links[i] = [2]int{vertex(e.P1), vertex(e.P2)}
	}
	for _, l := range links {
		w.record('l', l[0], l[1])
	}
	return w.flush("skeleton")
}

// WriteTetrahedra writes each tetrahedron's corners and its four faces.
func WriteTetrahedra(out io.Writer, tets []geom.Tetrahedron) error {
	w := newWriter(out)
	for _, t := range tets {
		for _, p := range t.Points() {
			w.vertex(p)
		}
	}
	for i := range tets {
		b := 4 * i
		w.record('f', b, b+1, b+2)
		w.record('f', b, b+1, b+3)
		w.record('f', b, b+2, b+3)
		w.record('f', b+1, b+2, b+3)
	}
	return w.flush("tetrahedra")
}
