//go:build 386 || arm || mips || mipsle

package checksum

import (
	"sync/atomic"
)

// atomicCounter tracks bytes hashed across workers. 32-bit platforms
// cannot rely on aligned 64-bit atomics inside arbitrary structs, so the
// counter is kept at word size there.
type atomicCounter struct {
	count uint32
}

func (c *atomicCounter) Add(val uint64) {
	atomic.AddUint32(&c.count, uint32(val))
}

func (c *atomicCounter) Load() uint64 {
	return uint64(atomic.LoadUint32(&c.count))
}
