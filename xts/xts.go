package xts

import (
	"crypto/cipher"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/internal/gf128"
	"github.com/codahale/aesmodes/internal/mem"
	"github.com/codahale/aesmodes/padding"
)

// XTS is XEX with ciphertext stealing: the ciphertext is exactly as long as the plaintext, which must be at least one
// block. Inputs which are a whole number of blocks are encrypted exactly as XEX would.
//
// The tweak carries over between calls, advancing once per block including a trailing partial block. It is not
// concurrent-safe.
type XTS struct {
	x XEX
}

// New returns an XTS mode which encrypts data with b and derives the initial tweak by encrypting sector with
// tweakCipher. It panics if either cipher's block size is not 16 bytes or if sector is not 16 bytes long.
func New(b, tweakCipher cipher.Block, sector []byte) *XTS {
	return &XTS{x: *NewXEX(b, tweakCipher, sector, padding.None)}
}

// NewAES returns an XTS mode over AES. As with golang.org/x/crypto/xts, the first half of key encrypts data and the
// second half encrypts the sector value, so key must be 32, 48, or 64 bytes long.
func NewAES(key, sector []byte) (*XTS, error) {
	b, tweakCipher, err := splitKey(key)
	if err != nil {
		return nil, err
	}
	return New(b, tweakCipher, sector), nil
}

// SetSector sets the tweak to the encryption of sector. It panics if sector is not 16 bytes long.
func (t *XTS) SetSector(sector []byte) {
	t.x.SetSector(sector)
}

// SetTweak replaces the current tweak. It panics if tweak is not 16 bytes long.
func (t *XTS) SetTweak(tweak []byte) {
	t.x.SetTweak(tweak)
}

// Tweak returns a copy of the tweak which will be applied to the next block.
func (t *XTS) Tweak() []byte {
	return t.x.Tweak()
}

// Encrypt encrypts plaintext, appends the ciphertext to dst, and returns the resulting slice. The ciphertext is the
// same length as the plaintext. dst and plaintext must overlap entirely or not at all.
//
// Encrypt panics if plaintext is shorter than one block.
func (t *XTS) Encrypt(dst, plaintext []byte) []byte {
	if len(plaintext) < aesmodes.BlockSize {
		panic("xts: input shorter than one block")
	}

	ret, out := mem.SliceForAppend(dst, len(plaintext))
	full, r := len(plaintext)/aesmodes.BlockSize, len(plaintext)%aesmodes.BlockSize
	if r == 0 {
		t.x.encryptBlocks(out, plaintext)
		return ret
	}

	head := (full - 1) * aesmodes.BlockSize
	t.x.encryptBlocks(out[:head], plaintext[:head])

	// Encrypt the last full block, then steal the tail of its ciphertext to fill out the partial block, which is
	// encrypted under the next tweak and takes the last full block's place.
	var cc, pp [aesmodes.BlockSize]byte
	t.x.encryptBlock(cc[:], plaintext[head:head+aesmodes.BlockSize], &t.x.tweak)
	gf128.MulX(&t.x.tweak)

	copy(pp[:], plaintext[head+aesmodes.BlockSize:])
	copy(pp[r:], cc[r:])
	t.x.encryptBlock(out[head:head+aesmodes.BlockSize], pp[:], &t.x.tweak)
	gf128.MulX(&t.x.tweak)

	copy(out[head+aesmodes.BlockSize:], cc[:r])
	return ret
}

// Decrypt decrypts ciphertext, appends the plaintext to dst, and returns the resulting slice. dst and ciphertext must
// overlap entirely or not at all.
//
// Decrypt panics if ciphertext is shorter than one block.
func (t *XTS) Decrypt(dst, ciphertext []byte) []byte {
	if len(ciphertext) < aesmodes.BlockSize {
		panic("xts: input shorter than one block")
	}

	ret, out := mem.SliceForAppend(dst, len(ciphertext))
	full, r := len(ciphertext)/aesmodes.BlockSize, len(ciphertext)%aesmodes.BlockSize
	if r == 0 {
		t.x.decryptBlocks(out, ciphertext)
		return ret
	}

	head := (full - 1) * aesmodes.BlockSize
	t.x.decryptBlocks(out[:head], ciphertext[:head])

	// The last full ciphertext block was encrypted under the later of the two tweaks, so it's decrypted first.
	prev := t.x.tweak
	gf128.MulX(&t.x.tweak)

	var pp, cc [aesmodes.BlockSize]byte
	t.x.decryptBlock(pp[:], ciphertext[head:head+aesmodes.BlockSize], &t.x.tweak)
	gf128.MulX(&t.x.tweak)

	copy(cc[:], ciphertext[head+aesmodes.BlockSize:])
	copy(cc[r:], pp[r:])
	t.x.decryptBlock(out[head:head+aesmodes.BlockSize], cc[:], &prev)

	copy(out[head+aesmodes.BlockSize:], pp[:r])
	return ret
}
