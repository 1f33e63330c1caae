// Package ctr implements counter mode, which turns a block cipher into a stream cipher.
//
// The keystream is the encryption of successive values of a 128-bit big-endian counter. Unused keystream bytes are
// kept between calls, so feeding a message in arbitrary pieces produces the same output as a single call.
package ctr

import (
	"crypto/cipher"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/internal/mem"
)

// Stream is a CTR keystream. Encryption and decryption are the same operation. It is not concurrent-safe.
type Stream struct {
	b         cipher.Block
	counter   [aesmodes.BlockSize]byte
	keystream [aesmodes.BlockSize]byte
	pos       int // index of the next unused keystream byte; BlockSize when none are left
}

// New returns a CTR stream for the given block cipher starting at the given counter block. It panics if the cipher's
// block size is not 16 bytes or if counter is not 16 bytes long.
func New(b cipher.Block, counter []byte) *Stream {
	if b.BlockSize() != aesmodes.BlockSize {
		panic("ctr: cipher block size must be 16 bytes")
	}

	s := &Stream{b: b}
	s.SetCounter(counter)
	return s
}

// NewAES returns a CTR stream over AES with the given key and initial counter block.
func NewAES(key, counter []byte) (*Stream, error) {
	c, err := aes.New(key)
	if err != nil {
		return nil, err
	}
	return New(c, counter), nil
}

// SetCounter sets the next counter block and discards any buffered keystream. It panics if counter is not 16 bytes
// long.
func (s *Stream) SetCounter(counter []byte) {
	if len(counter) != aesmodes.BlockSize {
		panic("ctr: counter length must equal block size")
	}
	copy(s.counter[:], counter)
	clear(s.keystream[:])
	s.pos = aesmodes.BlockSize
}

// Counter returns a copy of the next counter block to be encrypted.
func (s *Stream) Counter() []byte {
	return append([]byte(nil), s.counter[:]...)
}

// Encrypt encrypts plaintext, appends the ciphertext to dst, and returns the resulting slice.
func (s *Stream) Encrypt(dst, plaintext []byte) []byte {
	ret, out := mem.SliceForAppend(dst, len(plaintext))
	s.XORKeyStream(out, plaintext)
	return ret
}

// Decrypt decrypts ciphertext, appends the plaintext to dst, and returns the resulting slice.
func (s *Stream) Decrypt(dst, ciphertext []byte) []byte {
	return s.Encrypt(dst, ciphertext)
}

// XORKeyStream XORs each byte of src with the next byte of the keystream and writes the result to dst. dst and src
// must overlap entirely or not at all. It panics if dst is shorter than src.
func (s *Stream) XORKeyStream(dst, src []byte) {
	if len(dst) < len(src) {
		panic("ctr: output smaller than input")
	}

	// Use up what's left of the previous call's keystream block.
	if s.pos < aesmodes.BlockSize {
		n := min(len(src), aesmodes.BlockSize-s.pos)
		mem.XOR(dst[:n], src[:n], s.keystream[s.pos:s.pos+n])
		s.pos += n
		dst, src = dst[n:], src[n:]
	}

	for len(src) >= aesmodes.BlockSize {
		s.refill()
		mem.XOR(dst[:aesmodes.BlockSize], src[:aesmodes.BlockSize], s.keystream[:])
		dst, src = dst[aesmodes.BlockSize:], src[aesmodes.BlockSize:]
	}

	if len(src) > 0 {
		s.refill()
		mem.XOR(dst[:len(src)], src, s.keystream[:len(src)])
		s.pos = len(src)
	}
}

// refill encrypts the counter into the keystream buffer and increments the counter.
func (s *Stream) refill() {
	s.b.Encrypt(s.keystream[:], s.counter[:])
	increment(&s.counter)
	s.pos = aesmodes.BlockSize
}

// increment adds one to a big-endian counter, wrapping from all ones to zero.
func increment(ctr *[aesmodes.BlockSize]byte) {
	for i := len(ctr) - 1; i >= 0; i-- {
		ctr[i]++
		if ctr[i] != 0 {
			return
		}
	}
}

var (
	_ aesmodes.Stream = (*Stream)(nil)
	_ cipher.Stream   = (*Stream)(nil)
)
