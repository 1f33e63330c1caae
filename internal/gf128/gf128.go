// Package gf128 implements the two GF(2^128) operations the block modes need: full multiplication in GCM's
// bit-reflected representation, and multiplication by x in the little-endian representation used by XTS.
package gf128

import (
	"encoding/binary"
)

// Size is the size of a field element in bytes.
const Size = 16

// Mul returns the product of x and y in GF(2^128) as defined for GHASH in NIST SP 800-38D, with the reduction
// polynomial x^128 + x^7 + x^2 + x + 1 and the most significant bit of byte 0 as the coefficient of x^0.
//
// It walks the 128 bits of y from most to least significant, adding x to the result for each set bit and then
// replacing x with x>>1, XORed with 0xe1<<120 if the bit shifted out of x was set.
func Mul(x, y *[Size]byte) [Size]byte {
	vh := binary.BigEndian.Uint64(x[:8])
	vl := binary.BigEndian.Uint64(x[8:])

	var zh, zl uint64
	for i := range 128 {
		bit := uint64(y[i/8]>>(7-i%8)) & 1
		m := -bit
		zh ^= vh & m
		zl ^= vl & m

		lsb := vl & 1
		vl = vl>>1 | vh<<63
		vh = vh>>1 ^ (0xe1<<56)&-lsb
	}

	var z [Size]byte
	binary.BigEndian.PutUint64(z[:8], zh)
	binary.BigEndian.PutUint64(z[8:], zl)
	return z
}

// MulX multiplies the tweak t by x in GF(2^128) with the reduction polynomial x^128 + x^7 + x^2 + x + 1, using the
// IEEE 1619 representation: byte 0 holds the least significant bits.
//
// Each byte is shifted left by one, taking the top bit of the byte below it. If a bit falls out of byte 15, 0x87 is
// XORed into byte 0.
func MulX(t *[Size]byte) {
	var carry byte
	for j := range t {
		out := t[j] >> 7
		t[j] = t[j]<<1 | carry
		carry = out
	}
	if carry != 0 {
		t[0] ^= 1<<7 | 1<<2 | 1<<1 | 1
	}
}
