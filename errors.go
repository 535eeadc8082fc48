package curveview

import "errors"

var (
	// ErrInvalidRegion is returned when a region of interest has a
	// non-finite bound or an inverted axis (min > max).
	ErrInvalidRegion = errors.New("curveview: invalid region of interest")

	// ErrTooFewPoints is returned when a curve has fewer than two points.
	ErrTooFewPoints = errors.New("curveview: curve needs at least two points")

	// ErrInvalidColor is returned for a color index outside the palette.
	ErrInvalidColor = errors.New("curveview: color index out of range")

	// ErrInvalidHex is returned by ParseHex for a malformed hex color.
	ErrInvalidHex = errors.New("curveview: malformed hex color")

	// ErrNonFinitePoint is returned when a curve point is NaN or infinite.
	ErrNonFinitePoint = errors.New("curveview: non-finite curve point")

	// ErrEmptyScene is returned when framing a scene that has no curves.
	ErrEmptyScene = errors.New("curveview: scene has no curves")
)
