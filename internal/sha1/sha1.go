// Package sha1 implements the SHA-1 message digest as defined in
// FIPS 180-4, as a portable incremental engine.
//
// SHA-1 is cryptographically broken; this package exists for
// bit-exact checksum compatibility, not for security.
package sha1

import (
	"encoding/binary"
	"hash"
)

// size of a SHA1 checksum in bytes
const Size = 20

// size of a SHA1 block in bytes
const BlockSize = 64

// SHA1 initial hash values
const (
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
	init4 = 0xC3D2E1F0
)

// digest represents the partial evaluation of a SHA1 checksum.
//
// Sum finalizes a copy of the state, so a digest stays writable after
// summing; Reset is the explicit way to start over. The total length is
// kept as a 64-bit byte count, so inputs beyond 2^61 bytes wrap the
// encoded bit length. That case is unreachable in practice and is not
// treated as an error.
type digest struct {
	h   [5]uint32       // current hash state
	x   [BlockSize]byte // pending partial block
	nx  int             // index into x
	len uint64
}

// New returns a new hash.Hash computing the SHA1 checksum.
func New() hash.Hash {
	d := new(digest)
	d.Reset()
	return d
}

// Sum20 returns the SHA1 checksum of data in a single call.
func Sum20(data []byte) [Size]byte {
	var d digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}

func (d *digest) Reset() {
	// the pending block needs no zeroing, Write only reads what it filled
	d.h[0] = init0
	d.h[1] = init1
	d.h[2] = init2
	d.h[3] = init3
	d.h[4] = init4
	d.nx = 0
	d.len = 0
}

func (d *digest) Size() int { return Size }

func (d *digest) BlockSize() int { return BlockSize }

// Write absorbs p into the hash state. It never returns an error; any
// byte content is valid input. A full pending block is compressed
// immediately, so the buffer always holds fewer than BlockSize bytes on
// return.
func (d *digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == BlockSize {
			block(&d.h, d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= BlockSize {
		n := len(p) &^ (BlockSize - 1)
		block(&d.h, p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// Sum appends the current checksum to in without disturbing the running
// state.
func (d *digest) Sum(in []byte) []byte {
	d0 := *d
	sum := d0.checkSum()
	return append(in, sum[:]...)
}

// checkSum applies the final padding and returns the digest: a 0x80
// byte, zeros until the length is 56 mod 64, then the total bit count
// as 8 big-endian bytes, followed by one last compression per block.
func (d *digest) checkSum() [Size]byte {
	len := d.len
	var tmp [64]byte
	tmp[0] = 0x80
	if len%64 < 56 {
		d.Write(tmp[0 : 56-len%64])
	} else {
		d.Write(tmp[0 : 64+56-len%64])
	}

	// Length in bits.
	len <<= 3
	binary.BigEndian.PutUint64(tmp[:], len)
	d.Write(tmp[0:8])

	if d.nx != 0 {
		panic("d.nx != 0")
	}

	var digest [Size]byte
	for i, s := range d.h {
		binary.BigEndian.PutUint32(digest[i*4:], s)
	}
	return digest
}
