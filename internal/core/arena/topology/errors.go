package topology

import "errors"

var (
	// Missing input

	ErrMissingVertices = errors.New("polygon arena has no vertices")
	ErrMissingSectors  = errors.New("circular arena has no sectors")

	// Malformed input

	ErrUnknownTopology     = errors.New("unknown topology type")
	ErrVertexCountMismatch = errors.New("vertex count does not match paddle count")
	ErrSideIndexOutOfRange = errors.New("side index out of range")
	ErrDegenerateSide      = errors.New("side has zero length")
)

// IsMissingData reports whether err means the frame lacks required geometry.
func IsMissingData(err error) bool {
	return errors.Is(err, ErrMissingVertices) || errors.Is(err, ErrMissingSectors)
}
