package scheduler

import "errors"

// ErrInvalidConfig is returned when the trigger configuration is invalid
var ErrInvalidConfig = errors.New("invalid scheduler configuration")
