//go:build !386 && !arm && !mips && !mipsle

package checksum

import (
	"sync/atomic"
)

// atomicCounter tracks bytes hashed across workers.
type atomicCounter struct {
	count uint64
}

func (c *atomicCounter) Add(val uint64) {
	atomic.AddUint64(&c.count, val)
}

func (c *atomicCounter) Load() uint64 {
	return atomic.LoadUint64(&c.count)
}
