// Package cbc implements cipher block chaining mode.
//
// Each plaintext block is XORed with the previous ciphertext block (or the IV, for the first block) before being
// encrypted. The chaining value carries over between calls, so a Mode encrypts one logical stream.
package cbc

import (
	"crypto/cipher"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/internal/mem"
	"github.com/codahale/aesmodes/padding"
)

// Mode is a CBC encrypter and decrypter. It is not concurrent-safe.
type Mode struct {
	b       cipher.Block
	iv      [aesmodes.BlockSize]byte
	padding padding.Scheme
}

// New returns a CBC mode for the given block cipher, initialization vector, and padding scheme. The cipher must have a
// 16-byte block and the IV must be 16 bytes long.
func New(b cipher.Block, iv []byte, p padding.Scheme) *Mode {
	if b.BlockSize() != aesmodes.BlockSize {
		panic("cbc: cipher block size must be 16 bytes")
	}

	m := &Mode{b: b, padding: p}
	m.SetIV(iv)
	return m
}

// NewAES returns a CBC mode over AES with the given key and IV.
func NewAES(key, iv []byte, p padding.Scheme) (*Mode, error) {
	c, err := aes.New(key)
	if err != nil {
		return nil, err
	}
	return New(c, iv, p), nil
}

// SetIV replaces the chaining value. It panics if iv is not 16 bytes long.
func (m *Mode) SetIV(iv []byte) {
	if len(iv) != aesmodes.BlockSize {
		panic("cbc: IV length must equal block size")
	}
	copy(m.iv[:], iv)
}

// IV returns a copy of the current chaining value: the last ciphertext block processed, or the IV if none has been.
func (m *Mode) IV() []byte {
	return append([]byte(nil), m.iv[:]...)
}

// Encrypt pads plaintext, encrypts it, appends the ciphertext to dst, and returns the resulting slice.
//
// Encrypt panics if the padded plaintext is not a whole number of blocks, which only happens with padding.None.
func (m *Mode) Encrypt(dst, plaintext []byte) []byte {
	padded := m.padding.Pad(plaintext, aesmodes.BlockSize)
	if len(padded)%aesmodes.BlockSize != 0 {
		panic("cbc: input not full blocks")
	}

	ret, out := mem.SliceForAppend(dst, len(padded))
	for i := 0; i < len(padded); i += aesmodes.BlockSize {
		block := out[i : i+aesmodes.BlockSize]
		mem.XOR(block, padded[i:i+aesmodes.BlockSize], m.iv[:])
		m.b.Encrypt(block, block)
		copy(m.iv[:], block)
	}
	return ret
}

// Decrypt decrypts ciphertext, removes the padding, appends the plaintext to dst, and returns the resulting slice.
//
// The chaining value advances over every ciphertext block even if the padding turns out to be invalid.
func (m *Mode) Decrypt(dst, ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%aesmodes.BlockSize != 0 {
		return nil, &aesmodes.UnpadError{Err: padding.ErrBadData}
	}

	buf := make([]byte, len(ciphertext))
	for i := 0; i < len(ciphertext); i += aesmodes.BlockSize {
		prev := m.iv
		block := ciphertext[i : i+aesmodes.BlockSize]
		copy(m.iv[:], block)

		out := buf[i : i+aesmodes.BlockSize]
		m.b.Decrypt(out, block)
		mem.XOR(out, out, prev[:])
	}

	plaintext, err := m.padding.Unpad(buf, aesmodes.BlockSize)
	if err != nil {
		clear(buf)
		return nil, &aesmodes.UnpadError{Err: err}
	}
	return append(dst, plaintext...), nil
}

var _ aesmodes.BlockMode = (*Mode)(nil)
