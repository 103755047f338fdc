package core

import "errors"

// ErrInvalidConfig is wrapped by every configuration error returned from
// constructors and setters. It is never produced by a ProcessSample call.
var ErrInvalidConfig = errors.New("invalid configuration")
