package physics

import "errors"

// ErrZeroMass is returned when a body with zero mass reaches force resolution.
var ErrZeroMass = errors.New("physics: zero mass body")
