// Package ghash implements GHASH, the universal hash over GF(2^128) which authenticates GCM ciphertexts.
//
// Associated data is absorbed, zero-padded to a block boundary, when the hash is created. Data written afterwards may
// arrive in pieces of any size; the final lengths block is appended by Sum.
package ghash

import (
	"encoding/binary"
	"io"

	"github.com/codahale/aesmodes/internal/gf128"
)

// Size is the size of a GHASH digest in bytes.
const Size = gf128.Size

// GHASH is a running GHASH computation. It is not concurrent-safe.
type GHASH struct {
	h, y    [gf128.Size]byte
	buf     [gf128.Size]byte
	n       int
	aadLen  uint64
	dataLen uint64
}

// New returns a GHASH keyed with the hash subkey h which has already absorbed aad. It panics if h is not 16 bytes long.
func New(h, aad []byte) *GHASH {
	if len(h) != gf128.Size {
		panic("ghash: hash subkey length must be 16 bytes")
	}

	g := &GHASH{aadLen: uint64(len(aad))}
	copy(g.h[:], h)
	g.absorb(aad)
	if r := len(aad) % gf128.Size; r > 0 {
		var block [gf128.Size]byte
		copy(block[:], aad[len(aad)-r:])
		g.fold(&block)
	}
	return g
}

// Write adds p to the hashed data. It never returns an error.
func (g *GHASH) Write(p []byte) (n int, err error) {
	n = len(p)
	g.dataLen += uint64(n) //nolint:gosec // n can't be <0

	if g.n > 0 {
		k := copy(g.buf[g.n:], p)
		g.n += k
		p = p[k:]
		if g.n < gf128.Size {
			return n, nil
		}
		g.fold(&g.buf)
		g.n = 0
	}

	p = g.absorb(p)
	g.n = copy(g.buf[:], p)
	return n, nil
}

// Sum appends the digest of the associated data and everything written so far to b and returns the resulting slice.
// It does not change the underlying state, so more data may be written afterwards.
func (g *GHASH) Sum(b []byte) []byte {
	d := *g
	if d.n > 0 {
		clear(d.buf[d.n:])
		d.fold(&d.buf)
	}

	var lengths [gf128.Size]byte
	binary.BigEndian.PutUint64(lengths[:8], g.aadLen*8)
	binary.BigEndian.PutUint64(lengths[8:], g.dataLen*8)
	d.fold(&lengths)
	return append(b, d.y[:]...)
}

// Size returns the number of bytes Sum will append.
func (g *GHASH) Size() int {
	return Size
}

// Clone returns an independent copy of the running hash.
func (g *GHASH) Clone() *GHASH {
	d := *g
	return &d
}

// absorb folds every whole block of p into the accumulator and returns the remainder.
func (g *GHASH) absorb(p []byte) []byte {
	var block [gf128.Size]byte
	for len(p) >= gf128.Size {
		copy(block[:], p)
		g.fold(&block)
		p = p[gf128.Size:]
	}
	return p
}

func (g *GHASH) fold(block *[gf128.Size]byte) {
	for i := range g.y {
		g.y[i] ^= block[i]
	}
	g.y = gf128.Mul(&g.h, &g.y)
}

var _ io.Writer = (*GHASH)(nil)
