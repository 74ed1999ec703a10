package cache

import "errors"

// ErrInvalidCapacity is returned by New when the capacity is not positive.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")
