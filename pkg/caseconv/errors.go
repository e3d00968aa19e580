package caseconv

import "errors"

// ErrMalformedSegment indicates the supplied segment is too short to cover
// the sample offsets for the requested script, or contains a cell that is not
// a single character.
var ErrMalformedSegment = errors.New("malformed calibration segment")
