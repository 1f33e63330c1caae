// Package aesmodes is a software implementation of the AES block cipher and the classic modes of operation built on
// top of it: ECB, CBC, CTR, XEX/XTS, and GCM (with its GHASH authenticator).
//
// The cipher itself lives in package aes, and each mode lives in its own package. Modes accept any cipher.Block with
// a 16-byte block, so they work equally well with aes.Cipher and crypto/aes.
//
// Every mode object carries mutable state (a chaining value, a counter and keystream buffer, a tweak, or a hash
// accumulator) and is not concurrent-safe. An aes.Cipher is immutable after construction and may be shared.
//
// This package does not attempt to be constant-time. Its table lookups are indexed by secret data. For production
// use, prefer crypto/aes and crypto/cipher.
package aesmodes

import (
	"errors"
)

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// ErrAuthentication is returned when an authentication tag does not match the ciphertext. No plaintext is returned
// alongside it.
var ErrAuthentication = errors.New("aesmodes: message authentication failed")

// UnpadError is returned when a block mode decrypted its input but the padding scheme rejected the result.
type UnpadError struct {
	Err error
}

func (e *UnpadError) Error() string {
	return "aesmodes: unpadding failed: " + e.Err.Error()
}

func (e *UnpadError) Unwrap() error {
	return e.Err
}

// A BlockMode encrypts whole blocks, padding plaintext on the way in and removing the padding on the way out.
type BlockMode interface {
	// Encrypt pads and encrypts plaintext, appends the ciphertext to dst, and returns the resulting slice.
	Encrypt(dst, plaintext []byte) []byte

	// Decrypt decrypts ciphertext, removes the padding, appends the plaintext to dst, and returns the resulting
	// slice. If the padding is invalid, it returns an *UnpadError.
	Decrypt(dst, ciphertext []byte) ([]byte, error)
}

// A Stream encrypts data of any length without expansion. Successive calls continue the same logical stream.
type Stream interface {
	Encrypt(dst, plaintext []byte) []byte
	Decrypt(dst, ciphertext []byte) []byte
}

// An AEAD encrypts and authenticates a stream of data.
type AEAD interface {
	// Encrypt encrypts plaintext, appends the ciphertext to dst, and returns the resulting slice along with an
	// authentication tag covering every ciphertext byte produced so far.
	Encrypt(dst, plaintext []byte) (ciphertext, tag []byte)

	// Decrypt authenticates ciphertext against tag and, only if it is authentic, decrypts it and appends the
	// plaintext to dst. Otherwise it returns ErrAuthentication.
	Decrypt(dst, ciphertext, tag []byte) ([]byte, error)
}
