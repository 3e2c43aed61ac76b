package mem

import "github.com/joshuapare/memkit/heap/seg"

type config struct {
	capacity int
}

var defaultConfig = config{
	capacity: seg.DefaultCapacity,
}

// Option configures Init.
type Option func(*config)

// WithCapacity sets the segment reservation size in bytes. The
// reservation bounds how far the heap can grow; it is rounded up to a
// whole number of pages.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}
