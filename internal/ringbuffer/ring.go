// Package ringbuffer provides a fixed-size blocking byte ring used to
// pipeline stream reads into the hashing engine: one goroutine fills the
// ring from an io.Reader while another drains it into the hasher.
package ringbuffer

import (
	"io"
	"sync"
)

// RingBuffer is a bounded byte queue. Writers block while the ring is
// full, readers block while it is empty. A single mutex guards all
// state; notEmpty and notFull share it so wakeups cannot be missed.
// It supports one producer and one consumer at a time: ReadFrom and
// WriteTo release the lock around external I/O and rely on being the
// only goroutine moving their end of the ring.
type RingBuffer struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	buf []byte
	err error

	start int
	end   int
	full  bool
}

func New(size int) *RingBuffer {
	r := &RingBuffer{
		buf: make([]byte, size),
	}
	r.notEmpty = sync.NewCond(&r.mu)
	r.notFull = sync.NewCond(&r.mu)
	return r
}

// Read fills p from the ring, blocking while the ring is empty and the
// writer is still open. It returns as soon as at least one byte has
// been copied. Once the writer is closed and the ring drained, Read
// returns the stored close error (io.EOF after CloseWriter).
func (r *RingBuffer) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := 0
	for w < len(p) {
		if r.isempty() {
			if r.err != nil {
				if w != 0 {
					return w, nil
				}
				return 0, r.err
			}
			if w != 0 {
				break
			}
			r.notEmpty.Wait()
			continue
		}

		if n := r.read(p[w:]); n != 0 {
			r.notFull.Signal()
			w += n
		}
	}

	return w, nil
}

// Write copies p into the ring, blocking while the ring is full. Writing
// to a closed ring returns the close error.
func (r *RingBuffer) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := 0
	for w < len(p) {
		if r.err != nil {
			return w, r.err
		}
		if r.isfull() {
			r.notFull.Wait()
			continue
		}

		if n := r.write(p[w:]); n != 0 {
			r.notEmpty.Signal()
			w += n
		}
	}

	return w, nil
}

// ReadFrom fills the ring from rio until EOF, blocking while the ring is
// full. This is the producer side of the stream hashing pipeline. The
// reader's error, if any, is returned; EOF is not an error.
func (r *RingBuffer) ReadFrom(rio io.Reader) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var w int64
	for {
		if r.err != nil {
			break
		}
		if r.isfull() {
			r.notFull.Wait()
			continue
		}

		// release the lock around the blocking read so drains can
		// proceed; the target segment is reserved by start/end which
		// only this writer advances
		buf := r.writable()
		r.mu.Unlock()
		nn, e := rio.Read(buf)
		r.mu.Lock()

		if nn > 0 {
			r.commitWrite(nn)
			w += int64(nn)
			r.notEmpty.Signal()
		}

		if e != nil {
			if e == io.EOF {
				break
			}
			return w, e
		}
	}

	return w, nil
}

// WriteTo drains the ring into wio until the writer side is closed and
// the ring is empty. This is the consumer side of the stream hashing
// pipeline; wio is typically the hash engine.
func (r *RingBuffer) WriteTo(wio io.Writer) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var w int64
	for {
		if r.isempty() {
			if r.err != nil {
				if r.err == io.EOF {
					break
				}
				return w, r.err
			}
			r.notEmpty.Wait()
			continue
		}

		buf := r.readable()
		r.mu.Unlock()
		nn, e := wio.Write(buf)
		r.mu.Lock()

		if nn > 0 {
			r.commitRead(nn)
			w += int64(nn)
			r.notFull.Signal()
		}

		if e != nil {
			return w, e
		}
	}

	return w, nil
}

func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.full {
		return len(r.buf)
	}
	if r.start <= r.end {
		return r.end - r.start
	}
	return len(r.buf) - r.start + r.end
}

func (r *RingBuffer) Size() int {
	return len(r.buf)
}

// CloseWriter marks the producer side done; readers drain the remaining
// bytes and then see io.EOF.
func (r *RingBuffer) CloseWriter() {
	r.CloseWithError(io.EOF)
}

// CloseWithError marks the producer side done with err, which readers
// observe once the ring is drained. Blocked readers and writers are
// woken.
func (r *RingBuffer) CloseWithError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	r.notEmpty.Broadcast()
	r.notFull.Broadcast()
}

// Reset returns the ring to its initial open, empty state so it can be
// reused for another stream.
func (r *RingBuffer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = nil
	r.resetposition()
	r.notFull.Broadcast()
}

// read copies buffered bytes into p. Caller holds mu.
func (r *RingBuffer) read(p []byte) int {
	w := 0
	if r.start < r.end {
		end := min(r.end-r.start, len(p))
		w = copy(p, r.buf[r.start:r.start+end])
		r.start += end
	} else {
		end := min(len(r.buf)-r.start, len(p))
		w = copy(p, r.buf[r.start:r.start+end])
		r.start = (r.start + end) % len(r.buf)
	}

	r.full = r.full && w == 0
	return w
}

// write copies p into free space. Caller holds mu.
func (r *RingBuffer) write(p []byte) int {
	w := 0
	if r.start <= r.end && !r.full {
		end := min(len(r.buf)-r.end, len(p))
		w = copy(r.buf[r.end:r.end+end], p)
		r.end = (r.end + w) % len(r.buf)
	} else {
		end := min(r.start-r.end, len(p))
		w = copy(r.buf[r.end:r.end+end], p)
		r.end += w
	}

	r.full = w != 0 && r.end == r.start
	return w
}

// writable returns the contiguous free segment after end. Caller holds
// mu and the ring must not be full.
func (r *RingBuffer) writable() []byte {
	if r.start <= r.end {
		return r.buf[r.end:]
	}
	return r.buf[r.end:r.start]
}

func (r *RingBuffer) commitWrite(n int) {
	r.end = (r.end + n) % len(r.buf)
	r.full = n != 0 && r.end == r.start
}

// readable returns the contiguous buffered segment from start. Caller
// holds mu and the ring must not be empty.
func (r *RingBuffer) readable() []byte {
	if r.start < r.end {
		return r.buf[r.start:r.end]
	}
	return r.buf[r.start:]
}

// commitRead advances start after an unlocked drain. The position is
// never reset here: a producer may hold a reservation at end while the
// ring is momentarily empty.
func (r *RingBuffer) commitRead(n int) {
	r.start = (r.start + n) % len(r.buf)
	r.full = r.full && n == 0
}

func (r *RingBuffer) isempty() bool {
	return !r.full && r.start == r.end
}

func (r *RingBuffer) isfull() bool {
	return r.full
}

func (r *RingBuffer) resetposition() {
	r.start = 0
	r.end = 0
	r.full = false
}
