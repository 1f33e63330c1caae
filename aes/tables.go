package aes

import "math/bits"

//nolint:gochecknoglobals // computed once, read-only afterward
var (
	// sbox and rsbox are the forward and inverse substitution boxes.
	sbox, rsbox = newSBoxes()

	// rcon holds the round constants x^(i-1) in GF(2^8) for i = 1..10. Only the key schedule uses them.
	rcon = newRcon()

	// forwardMix and inverseMix are the first rows of the circulant MixColumns matrices.
	forwardMix = [4]byte{0x02, 0x03, 0x01, 0x01}
	inverseMix = [4]byte{0x0e, 0x0b, 0x0d, 0x09}
)

// newSBoxes walks the multiplicative group of GF(2^8) with the generator 3, tracking p = 3^k and q = 3^-k in step, so
// q is always the inverse of p. Each S-box entry is the affine transform of the inverse.
func newSBoxes() (s, r [256]byte) {
	p, q := byte(1), byte(1)
	for {
		// p *= 3
		hi := p & 0x80
		p ^= p << 1
		if hi != 0 {
			p ^= 0x1b
		}

		// q /= 3
		q ^= q << 1
		q ^= q << 2
		q ^= q << 4
		if q&0x80 != 0 {
			q ^= 0x09
		}

		s[p] = 0x63 ^ q ^ bits.RotateLeft8(q, 1) ^ bits.RotateLeft8(q, 2) ^ bits.RotateLeft8(q, 3) ^ bits.RotateLeft8(q, 4)
		if p == 1 {
			break
		}
	}

	// Zero has no inverse and is special-cased.
	s[0] = 0x63

	for i, v := range s {
		r[v] = byte(i)
	}
	return s, r
}

func newRcon() (r [10]byte) {
	c := byte(1)
	for i := range r {
		r[i] = c
		c = xtime(c)
	}
	return r
}

// xtime multiplies a by x in GF(2^8) modulo x^8 + x^4 + x^3 + x + 1.
func xtime(a byte) byte {
	hi := a & 0x80
	a <<= 1
	if hi != 0 {
		a ^= 0x1b
	}
	return a
}

// gmul multiplies a and b in GF(2^8) with the shift-and-add method, reducing by 0x1b whenever a shift overflows.
func gmul(a, b byte) byte {
	var p byte
	for range 8 {
		if b&1 != 0 {
			p ^= a
		}
		a = xtime(a)
		b >>= 1
	}
	return p
}
