// Package xts implements the XEX tweakable block mode and XTS, its ciphertext-stealing variant from IEEE 1619 and
// NIST SP 800-38E.
//
// Both modes use two block ciphers: one encrypts the data, the other encrypts the sector value to produce the initial
// tweak. Each block is whitened with the tweak before and after encryption, and the tweak is multiplied by x in
// GF(2^128) after every block.
package xts

import (
	"crypto/cipher"
	"encoding/binary"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/internal/gf128"
	"github.com/codahale/aesmodes/internal/mem"
	"github.com/codahale/aesmodes/padding"
)

// XEX is a padded tweakable block mode. The tweak carries over between calls. It is not concurrent-safe.
type XEX struct {
	b, tweakCipher cipher.Block
	tweak          [aesmodes.BlockSize]byte
	padding        padding.Scheme
}

// NewXEX returns an XEX mode which encrypts data with b and derives the initial tweak by encrypting sector with
// tweakCipher. It panics if either cipher's block size is not 16 bytes or if sector is not 16 bytes long.
func NewXEX(b, tweakCipher cipher.Block, sector []byte, p padding.Scheme) *XEX {
	if b.BlockSize() != aesmodes.BlockSize || tweakCipher.BlockSize() != aesmodes.BlockSize {
		panic("xts: cipher block size must be 16 bytes")
	}

	x := &XEX{b: b, tweakCipher: tweakCipher, padding: p}
	x.SetSector(sector)
	return x
}

// NewXEXAES returns an XEX mode over AES. The first half of key encrypts data and the second half encrypts the sector
// value, so key must be 32, 48, or 64 bytes long.
func NewXEXAES(key, sector []byte, p padding.Scheme) (*XEX, error) {
	b, tweakCipher, err := splitKey(key)
	if err != nil {
		return nil, err
	}
	return NewXEX(b, tweakCipher, sector, p), nil
}

// SetSector sets the tweak to the encryption of sector, as if the mode had been newly constructed. It panics if sector
// is not 16 bytes long.
func (x *XEX) SetSector(sector []byte) {
	if len(sector) != aesmodes.BlockSize {
		panic("xts: sector length must equal block size")
	}
	x.tweakCipher.Encrypt(x.tweak[:], sector)
}

// SetTweak replaces the current tweak. It panics if tweak is not 16 bytes long.
func (x *XEX) SetTweak(tweak []byte) {
	if len(tweak) != aesmodes.BlockSize {
		panic("xts: tweak length must equal block size")
	}
	copy(x.tweak[:], tweak)
}

// Tweak returns a copy of the tweak which will be applied to the next block.
func (x *XEX) Tweak() []byte {
	return append([]byte(nil), x.tweak[:]...)
}

// Encrypt pads plaintext, encrypts it, appends the ciphertext to dst, and returns the resulting slice.
//
// Encrypt panics if the padded plaintext is not a whole number of blocks, which only happens with padding.None.
func (x *XEX) Encrypt(dst, plaintext []byte) []byte {
	padded := x.padding.Pad(plaintext, aesmodes.BlockSize)
	if len(padded)%aesmodes.BlockSize != 0 {
		panic("xts: input not full blocks")
	}

	ret, out := mem.SliceForAppend(dst, len(padded))
	x.encryptBlocks(out, padded)
	return ret
}

// Decrypt decrypts ciphertext, removes the padding, appends the plaintext to dst, and returns the resulting slice.
func (x *XEX) Decrypt(dst, ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%aesmodes.BlockSize != 0 {
		return nil, &aesmodes.UnpadError{Err: padding.ErrBadData}
	}

	buf := make([]byte, len(ciphertext))
	x.decryptBlocks(buf, ciphertext)

	plaintext, err := x.padding.Unpad(buf, aesmodes.BlockSize)
	if err != nil {
		clear(buf)
		return nil, &aesmodes.UnpadError{Err: err}
	}
	return append(dst, plaintext...), nil
}

func (x *XEX) encryptBlocks(dst, src []byte) {
	for i := 0; i < len(src); i += aesmodes.BlockSize {
		x.encryptBlock(dst[i:i+aesmodes.BlockSize], src[i:i+aesmodes.BlockSize], &x.tweak)
		gf128.MulX(&x.tweak)
	}
}

func (x *XEX) decryptBlocks(dst, src []byte) {
	for i := 0; i < len(src); i += aesmodes.BlockSize {
		x.decryptBlock(dst[i:i+aesmodes.BlockSize], src[i:i+aesmodes.BlockSize], &x.tweak)
		gf128.MulX(&x.tweak)
	}
}

// encryptBlock computes E(src ^ t) ^ t into dst.
func (x *XEX) encryptBlock(dst, src []byte, t *[aesmodes.BlockSize]byte) {
	mem.XOR(dst, src, t[:])
	x.b.Encrypt(dst, dst)
	mem.XOR(dst, dst, t[:])
}

// decryptBlock computes D(src ^ t) ^ t into dst.
func (x *XEX) decryptBlock(dst, src []byte, t *[aesmodes.BlockSize]byte) {
	mem.XOR(dst, src, t[:])
	x.b.Decrypt(dst, dst)
	mem.XOR(dst, dst, t[:])
}

// SectorTweak encodes a sector number as a 16-byte little-endian value, the sector layout used by IEEE 1619 and
// golang.org/x/crypto/xts.
func SectorTweak(n uint64) []byte {
	sector := make([]byte, aesmodes.BlockSize)
	binary.LittleEndian.PutUint64(sector, n)
	return sector
}

func splitKey(key []byte) (b, tweakCipher cipher.Block, err error) {
	switch len(key) {
	case 32, 48, 64:
	default:
		return nil, nil, aes.KeySizeError(len(key))
	}

	half := len(key) / 2
	if b, err = aes.New(key[:half]); err != nil {
		return nil, nil, err
	}
	if tweakCipher, err = aes.New(key[half:]); err != nil {
		return nil, nil, err
	}
	return b, tweakCipher, nil
}

var _ aesmodes.BlockMode = (*XEX)(nil)
