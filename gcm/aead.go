package gcm

import (
	"crypto/cipher"

	"github.com/codahale/aesmodes"
)

// NewAEAD returns a cipher.AEAD which seals each message with a fresh GCM instance. It uses 12-byte nonces, appends a
// 16-byte tag, and produces the same output as crypto/cipher.NewGCM. It panics if the cipher's block size is not 16
// bytes.
func NewAEAD(b cipher.Block) cipher.AEAD {
	if b.BlockSize() != aesmodes.BlockSize {
		panic("gcm: cipher block size must be 16 bytes")
	}
	return &aead{b: b, h: hashKey(b)}
}

type aead struct {
	b cipher.Block
	h [aesmodes.BlockSize]byte
}

func (a *aead) NonceSize() int {
	return NonceSize
}

func (a *aead) Overhead() int {
	return TagSize
}

func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) []byte {
	ret, tag := newGCM(a.b, a.h, nonce, additionalData).Encrypt(dst, plaintext)
	return append(ret, tag...)
}

func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	g := newGCM(a.b, a.h, nonce, additionalData)
	if len(ciphertext) < TagSize {
		return nil, aesmodes.ErrAuthentication
	}

	ciphertext, tag := ciphertext[:len(ciphertext)-TagSize], ciphertext[len(ciphertext)-TagSize:]
	return g.Decrypt(dst, ciphertext, tag)
}

var _ cipher.AEAD = (*aead)(nil)
