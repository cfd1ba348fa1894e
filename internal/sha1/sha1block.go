package sha1

import "math/bits"

// SHA1 round constants, one per quartile of the 80 rounds
const (
	_K0 = 0x5A827999
	_K1 = 0x6ED9EBA1
	_K2 = 0x8F1BBCDC
	_K3 = 0xCA62C1D6
)

// block compresses p, which must be a multiple of BlockSize bytes, into
// the hash state h. It is a pure function of (state, block) and keeps no
// state of its own; all additions are modular uint32 arithmetic.
func block(h *[5]uint32, p []byte) {
	var w [80]uint32

	h0, h1, h2, h3, h4 := h[0], h[1], h[2], h[3], h[4]

	for len(p) >= BlockSize {
		// message schedule: 16 big-endian words extended to 80
		for i := 0; i < 16; i++ {
			j := i * 4
			w[i] = uint32(p[j])<<24 | uint32(p[j+1])<<16 | uint32(p[j+2])<<8 | uint32(p[j+3])
		}
		for i := 16; i < 80; i++ {
			w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
		}

		a, b, c, d, e := h0, h1, h2, h3, h4

		for i := 0; i < 20; i++ {
			f := (b & c) | (^b & d)
			t := bits.RotateLeft32(a, 5) + f + e + _K0 + w[i]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		for i := 20; i < 40; i++ {
			f := b ^ c ^ d
			t := bits.RotateLeft32(a, 5) + f + e + _K1 + w[i]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		for i := 40; i < 60; i++ {
			f := (b & c) | (b & d) | (c & d)
			t := bits.RotateLeft32(a, 5) + f + e + _K2 + w[i]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}
		for i := 60; i < 80; i++ {
			f := b ^ c ^ d
			t := bits.RotateLeft32(a, 5) + f + e + _K3 + w[i]
			a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
		}

		h0 += a
		h1 += b
		h2 += c
		h3 += d
		h4 += e

		p = p[BlockSize:]
	}

	h[0], h[1], h[2], h[3], h[4] = h0, h1, h2, h3, h4
}
