// Package tessellate walks a scene graph and produces triangle meshes
// using a geometry kernel. One mesh is produced per shape.
package tessellate

import (
	"github.com/chazu/medial/pkg/kernel"
	"github.com/chazu/medial/pkg/scene"
	"github.com/pkg/errors"
)

// Tessellate builds the solid under every root of g and meshes it with k at
// the given marching-cubes resolution. Meshes are returned in root order.
// The tessellator is read-only and never mutates the graph.
func Tessellate(g *scene.Graph, k kernel.Kernel, cells int) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	var meshes []*kernel.Mesh
	for _, root := range g.Shapes() {
		solid, err := build(g, k, root)
		if err != nil {
			return nil, errors.Wrapf(err, "tessellate: root %s", root.ID.Short())
		}

		mesh, err := k.ToMesh(solid, cells)
		if err != nil {
			return nil, errors.Wrapf(err, "tessellate: ToMesh failed for root %s", root.ID.Short())
		}

		// Prefer the shape name, fall back to short ID.
		if root.Name != "" {
			mesh.PartName = root.Name
		} else {
			mesh.PartName = root.ID.Short()
		}
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// build recursively converts the subtree rooted at n into a kernel solid.
func build(g *scene.Graph, k kernel.Kernel, n *scene.Node) (kernel.Solid, error) {
	switch n.Kind {
	case scene.NodePrimitive:
		return handlePrimitive(k, n)

	case scene.NodeTransform:
		return handleTransform(g, k, n)

	case scene.NodeBoolean:
		return handleBoolean(g, k, n)

	case scene.NodeShape:
		return single(g, k, n)

	default:
		return nil, errors.Errorf("unknown node kind: %v", n.Kind)
	}
}

func handlePrimitive(k kernel.Kernel, n *scene.Node) (kernel.Solid, error) {
	var (
		solid kernel.Solid
		err   error
	)
	switch data := n.Data.(type) {
	case scene.BoxData:
		solid, err = k.Box(data.Size.X, data.Size.Y, data.Size.Z)
	case scene.SphereData:
		solid, err = k.Sphere(data.Radius)
	case scene.CylinderData:
		solid, err = k.Cylinder(data.Height, data.Radius)
	default:
		return nil, errors.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "primitive node %s", n.ID.Short())
	}
	return solid, nil
}

// handleTransform applies rotation first, then translation.
func handleTransform(g *scene.Graph, k kernel.Kernel, n *scene.Node) (kernel.Solid, error) {
	td, ok := n.Data.(scene.TransformData)
	if !ok {
		return nil, errors.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	solid, err := single(g, k, n)
	if err != nil {
		return nil, err
	}
	if r := td.Rotation; r != nil && !r.IsZero() {
		solid = k.Rotate(solid, r.X, r.Y, r.Z)
	}
	if t := td.Translation; t != nil && !t.IsZero() {
		solid = k.Translate(solid, t.X, t.Y, t.Z)
	}
	return solid, nil
}

// handleBoolean folds the operation left to right over the children.
func handleBoolean(g *scene.Graph, k kernel.Kernel, n *scene.Node) (kernel.Solid, error) {
	bd, ok := n.Data.(scene.BooleanData)
	if !ok {
		return nil, errors.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	children := g.Children(n)
	if len(children) == 0 {
		return nil, errors.Errorf("boolean node %s has no children", n.ID.Short())
	}

	acc, err := build(g, k, children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range children[1:] {
		next, err := build(g, k, c)
		if err != nil {
			return nil, err
		}
		switch bd.Op {
		case scene.OpUnion:
			acc = k.Union(acc, next)
		case scene.OpDifference:
			acc = k.Difference(acc, next)
		case scene.OpIntersection:
			acc = k.Intersection(acc, next)
		default:
			return nil, errors.Errorf("boolean node %s has unknown op %v", n.ID.Short(), bd.Op)
		}
	}
	return acc, nil
}

// single builds the only child of a wrapper node.
func single(g *scene.Graph, k kernel.Kernel, n *scene.Node) (kernel.Solid, error) {
	children := g.Children(n)
	if len(children) != 1 {
		return nil, errors.Errorf("%s node %s has %d children, want 1", n.Kind, n.ID.Short(), len(children))
	}
	return build(g, k, children[0])
}
