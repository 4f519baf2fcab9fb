// Package containment classifies points against a closed triangulated
// surface by parity ray casting: a ray from the query point crosses the
// surface an odd number of times exactly when the point is inside.
//
// A ray that passes exactly through a triangle edge or vertex counts as a
// miss for every triangle sharing it, so such rays can report the wrong
// side. The default ray direction is skewed for this reason. Axis rays
// (WithAxis) are unreliable for points whose coordinates line up with the
// mesh: from the center of a triangulated box, an axis ray runs straight
// through the diagonals that split each square face.
//
// Orientation signs are exact: only a zero product counts as grazing, so
// the test behaves the same at every mesh scale.
package containment
