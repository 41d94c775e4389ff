package config

import "errors"

// ErrInvalidResolution is returned for a window size that is not WIDTHxHEIGHT with
// positive dimensions.
var ErrInvalidResolution = errors.New("config: invalid resolution")
