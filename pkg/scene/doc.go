// Package scene defines the shape graph produced by evaluating a shape
// script. The graph is a DAG of primitives, transforms and boolean
// operations; each root is a closed solid whose medial axis can be
// extracted.
package scene
