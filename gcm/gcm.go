// Package gcm implements Galois/Counter Mode, the AEAD from NIST SP 800-38D.
//
// A GCM instance encrypts one message stream under one nonce: data is encrypted with CTR starting at the second
// counter block and authenticated with GHASH over the associated data and the ciphertext. The stream may be fed in
// pieces; each call returns the tag over all ciphertext so far.
package gcm

import (
	"crypto/cipher"
	"crypto/subtle"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/ctr"
	"github.com/codahale/aesmodes/ghash"
	"github.com/codahale/aesmodes/internal/mem"
)

const (
	// NonceSize is the size of a GCM nonce in bytes.
	NonceSize = 12

	// TagSize is the size of a GCM authentication tag in bytes.
	TagSize = 16
)

// GCM is a streaming GCM encrypter and decrypter for a single nonce. It is not concurrent-safe.
type GCM struct {
	ctr     *ctr.Stream
	mac     *ghash.GHASH
	tagMask [aesmodes.BlockSize]byte
}

// New returns a GCM instance for the given block cipher, nonce, and associated data. It panics if the cipher's block
// size is not 16 bytes or if nonce is not 12 bytes long.
func New(b cipher.Block, nonce, aad []byte) *GCM {
	if b.BlockSize() != aesmodes.BlockSize {
		panic("gcm: cipher block size must be 16 bytes")
	}
	return newGCM(b, hashKey(b), nonce, aad)
}

// NewAES returns a GCM instance over AES with the given key, nonce, and associated data.
func NewAES(key, nonce, aad []byte) (*GCM, error) {
	c, err := aes.New(key)
	if err != nil {
		return nil, err
	}
	return New(c, nonce, aad), nil
}

func newGCM(b cipher.Block, h [aesmodes.BlockSize]byte, nonce, aad []byte) *GCM {
	if len(nonce) != NonceSize {
		panic("gcm: incorrect nonce length")
	}

	// J0 is the nonce followed by a 32-bit big-endian one. It masks the tag; data starts at J0+1.
	var j [aesmodes.BlockSize]byte
	copy(j[:], nonce)
	j[aesmodes.BlockSize-1] = 1

	g := &GCM{mac: ghash.New(h[:], aad)}
	b.Encrypt(g.tagMask[:], j[:])

	j[aesmodes.BlockSize-1] = 2
	g.ctr = ctr.New(b, j[:])
	return g
}

// Encrypt encrypts plaintext and appends the ciphertext to dst. It returns the resulting slice and the tag over the
// associated data and all ciphertext produced by this instance so far.
func (g *GCM) Encrypt(dst, plaintext []byte) (ciphertext, tag []byte) {
	ret, out := mem.SliceForAppend(dst, len(plaintext))
	g.ctr.XORKeyStream(out, plaintext)
	_, _ = g.mac.Write(out)
	return ret, g.tag(g.mac)
}

// Decrypt checks tag against the associated data and all ciphertext given to this instance so far, including
// ciphertext. If the tag is valid, it decrypts ciphertext, appends the plaintext to dst, and returns the resulting
// slice.
//
// If the tag is invalid, Decrypt returns aesmodes.ErrAuthentication without decrypting anything, and the instance is
// left as it was before the call.
func (g *GCM) Decrypt(dst, ciphertext, tag []byte) ([]byte, error) {
	mac := g.mac.Clone()
	_, _ = mac.Write(ciphertext)

	if subtle.ConstantTimeCompare(g.tag(mac), tag) != 1 {
		return nil, aesmodes.ErrAuthentication
	}

	g.mac = mac
	ret, out := mem.SliceForAppend(dst, len(ciphertext))
	g.ctr.XORKeyStream(out, ciphertext)
	return ret, nil
}

func (g *GCM) tag(mac *ghash.GHASH) []byte {
	var s [ghash.Size]byte
	mac.Sum(s[:0])
	mem.XOR(s[:], s[:], g.tagMask[:])
	return s[:]
}

// hashKey returns H, the encryption of the all-zero block.
func hashKey(b cipher.Block) [aesmodes.BlockSize]byte {
	var h [aesmodes.BlockSize]byte
	b.Encrypt(h[:], h[:])
	return h
}

var _ aesmodes.AEAD = (*GCM)(nil)
