package checksum

import (
	"fmt"
	"io"

	"github.com/hashbrr/hashbrr/internal/ringbuffer"
	"github.com/hashbrr/hashbrr/internal/sha1"
)

// streamRingSize bounds memory for stream hashing regardless of input
// size.
const streamRingSize = 1 << 20

// HashStream hashes everything readable from r (typically stdin) and
// returns the digest and the number of bytes hashed. Reads are
// pipelined through a ring buffer so the producer can keep filling
// while the engine compresses.
func HashStream(r io.Reader) ([sha1.Size]byte, int64, error) {
	var digest [sha1.Size]byte

	rb := ringbuffer.New(streamRingSize)
	readErr := make(chan error, 1)
	go func() {
		_, err := rb.ReadFrom(r)
		if err != nil {
			rb.CloseWithError(err)
			readErr <- err
			return
		}
		rb.CloseWriter()
		readErr <- nil
	}()

	h := sha1.New()
	n, err := rb.WriteTo(h)
	if err != nil {
		return digest, n, fmt.Errorf("could not hash stream: %w", err)
	}
	if err := <-readErr; err != nil && err != io.EOF {
		return digest, n, fmt.Errorf("could not read stream: %w", err)
	}

	copy(digest[:], h.Sum(nil))
	return digest, n, nil
}
