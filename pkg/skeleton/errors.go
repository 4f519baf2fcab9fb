package skeleton

import "github.com/pkg/errors"

// ErrNonManifoldFace is returned by FaceAdjacencyStrict when more than two
// tetrahedra share a face.
var ErrNonManifoldFace = errors.New("skeleton: face shared by more than two tetrahedra")
