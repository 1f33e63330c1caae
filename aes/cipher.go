// Package aes implements the AES block cipher (FIPS 197) for 128-, 192-, and 256-bit keys.
//
// The implementation follows FIPS 197 directly: a 4x4 byte state, S-box lookups, and GF(2^8) arithmetic for
// MixColumns. It is table-based and therefore not constant-time.
package aes

import (
	"crypto/cipher"
	"strconv"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// KeySizeError is returned when a key is not 16, 24, or 32 bytes long.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aes: invalid key size " + strconv.Itoa(int(k))
}

// Cipher is an AES key schedule. It is immutable and safe for concurrent use.
type Cipher struct {
	roundKeys []state
}

// New expands the given key into a Cipher. The key must be 16, 24, or 32 bytes long, selecting AES-128, AES-192, or
// AES-256.
func New(key []byte) (*Cipher, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, KeySizeError(len(key))
	}
	return &Cipher{roundKeys: expandKey(key)}, nil
}

// NewCipher is New with the signature of crypto/aes.NewCipher, for use with code that constructs ciphers from a
// function value.
func NewCipher(key []byte) (cipher.Block, error) {
	c, err := New(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// BlockSize returns the AES block size, 16 bytes.
func (c *Cipher) BlockSize() int {
	return BlockSize
}

// Rounds returns the number of rounds: 10, 12, or 14.
func (c *Cipher) Rounds() int {
	return len(c.roundKeys) - 1
}

// Encrypt encrypts the first block of src into dst. Dst and src may overlap entirely.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}
	encryptBlock(c.roundKeys, dst, src)
}

// Decrypt decrypts the first block of src into dst. Dst and src may overlap entirely.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}
	decryptBlock(c.roundKeys, dst, src)
}

var _ cipher.Block = (*Cipher)(nil)
