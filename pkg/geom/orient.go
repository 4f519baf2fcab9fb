package geom

// Orient3D returns the signed volume determinant of (b-a, c-a, d-a). It is
// positive when d lies on the side of plane abc that (b-a)x(c-a) points to.
func Orient3D(a, b, c, d Point) float64 {
	av := a.Vec()
	ab := b.Vec().Sub(av)
	ac := c.Vec().Sub(av)
	ad := d.Vec().Sub(av)
	return ab.Cross(ac).Dot(ad)
}

// Sign returns -1, 0 or 1 for v. Only an exact zero maps to 0: orientation
// products scale with the cube of the coordinates, so no absolute tolerance
// is valid at every scale.
func Sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
