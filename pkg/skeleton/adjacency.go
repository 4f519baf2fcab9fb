package skeleton

import (
	"sort"

	"github.com/chazu/medial/pkg/geom"
	"github.com/pkg/errors"
)

// FaceCells records the tetrahedra on either side of a face. Second is nil
// for a boundary face. Both slots hold copies, never pointers into the
// input slice.
type FaceCells struct {
	Face   geom.Face
	First  geom.Tetrahedron
	Second *geom.Tetrahedron
}

// IsInternal reports whether both sides of the face are occupied.
func (c *FaceCells) IsInternal() bool {
	return c.Second != nil
}

// Adjacency maps each face of a tetrahedralization to the cells that own it.
type Adjacency map[geom.FaceKey]*FaceCells

// FaceAdjacency indexes the four faces of every tetrahedron. The first
// tetrahedron to reach a face takes the First slot; any later one is
// written to Second, replacing an earlier occupant. A valid
// tetrahedralization never has a third claimant.
func FaceAdjacency(tets []geom.Tetrahedron) Adjacency {
	adj := make(Adjacency, 2*len(tets)+2)
	for i := range tets {
		for _, f := range tets[i].Faces() {
			k := f.Key()
			if c, ok := adj[k]; ok {
				second := tets[i]
				c.Second = &second
				continue
			}
			adj[k] = &FaceCells{Face: f, First: tets[i]}
		}
	}
	return adj
}

// FaceAdjacencyStrict is FaceAdjacency but fails with ErrNonManifoldFace
// instead of overwriting.
func FaceAdjacencyStrict(tets []geom.Tetrahedron) (Adjacency, error) {
	adj := make(Adjacency, 2*len(tets)+2)
	for i := range tets {
		for _, f := range tets[i].Faces() {
			k := f.Key()
			c, ok := adj[k]
			if !ok {
				adj[k] = &FaceCells{Face: f, First: tets[i]}
				continue
			}
			if c.Second != nil {
				return nil, errors.Wrapf(ErrNonManifoldFace, "tetrahedron %d face %s %s %s",
					i, f.P1, f.P2, f.P3)
			}
			second := tets[i]
			c.Second = &second
		}
	}
	return adj, nil
}

// Keys returns the face keys in ascending order.
func (a Adjacency) Keys() []geom.FaceKey {
	keys := make([]geom.FaceKey, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lessFaceKey(keys[i], keys[j]) })
	return keys
}

// Internal returns the entries shared by two tetrahedra, ordered by key.
func (a Adjacency) Internal() []*FaceCells {
	return a.filter(true)
}

// Boundary returns the entries owned by a single tetrahedron, ordered by key.
func (a Adjacency) Boundary() []*FaceCells {
	return a.filter(false)
}

// InternalCount returns the number of faces shared by two tetrahedra.
func (a Adjacency) InternalCount() int {
	n := 0
	for _, c := range a {
		if c.IsInternal() {
			n++
		}
	}
	return n
}

func (a Adjacency) filter(internal bool) []*FaceCells {
	var out []*FaceCells
	for _, k := range a.Keys() {
		if c := a[k]; c.IsInternal() == internal {
			out = append(out, c)
		}
	}
	return out
}

func lessFaceKey(a, b geom.FaceKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i].Less(b[i])
		}
	}
	return false
}
