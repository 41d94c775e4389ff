package render

import "errors"

// ErrTrackTargetMissing is returned when the camera tracks an entity that is not among
// the bodies projected this tick.
var ErrTrackTargetMissing = errors.New("render: tracked entity missing")
