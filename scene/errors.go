package scene

import "errors"

var (
	// ErrNoBodies is returned when a scene has no massive body to track.
	ErrNoBodies = errors.New("scene: no bodies")
	// ErrInvalidMass is returned for a body whose mass is not positive.
	ErrInvalidMass = errors.New("scene: invalid mass")
	// ErrInvalidAppearance is returned for a body that sets both or neither of color
	// and image, or carries a malformed colour.
	ErrInvalidAppearance = errors.New("scene: invalid appearance")
)
