// Package ecb implements electronic codebook mode, in which every block is encrypted independently.
//
// ECB leaks equality of plaintext blocks and should only be used for compatibility with existing formats.
package ecb

import (
	"crypto/cipher"
	"runtime"
	"sync"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/internal/mem"
	"github.com/codahale/aesmodes/padding"
)

// parallelThreshold is the input size above which blocks are spread across goroutines.
const parallelThreshold = 64 * 1024

// Mode is an ECB encrypter and decrypter. It holds no state beyond its cipher and padding scheme.
type Mode struct {
	b       cipher.Block
	padding padding.Scheme
}

// New returns an ECB mode for the given block cipher and padding scheme. The cipher must have a 16-byte block and, for
// inputs large enough to be processed in parallel, must be safe for concurrent use.
func New(b cipher.Block, p padding.Scheme) *Mode {
	if b.BlockSize() != aesmodes.BlockSize {
		panic("ecb: cipher block size must be 16 bytes")
	}
	return &Mode{b: b, padding: p}
}

// NewAES returns an ECB mode over AES with the given key.
func NewAES(key []byte, p padding.Scheme) (*Mode, error) {
	c, err := aes.New(key)
	if err != nil {
		return nil, err
	}
	return New(c, p), nil
}

// Encrypt pads plaintext, encrypts each block, appends the ciphertext to dst, and returns the resulting slice.
//
// Encrypt panics if the padded plaintext is not a whole number of blocks, which only happens with padding.None.
func (m *Mode) Encrypt(dst, plaintext []byte) []byte {
	padded := m.padding.Pad(plaintext, aesmodes.BlockSize)
	if len(padded)%aesmodes.BlockSize != 0 {
		panic("ecb: input not full blocks")
	}

	ret, out := mem.SliceForAppend(dst, len(padded))
	crypt(m.b.Encrypt, out, padded)
	return ret
}

// Decrypt decrypts each block of ciphertext, removes the padding, appends the plaintext to dst, and returns the
// resulting slice.
func (m *Mode) Decrypt(dst, ciphertext []byte) ([]byte, error) {
	if len(ciphertext)%aesmodes.BlockSize != 0 {
		return nil, &aesmodes.UnpadError{Err: padding.ErrBadData}
	}

	buf := make([]byte, len(ciphertext))
	crypt(m.b.Decrypt, buf, ciphertext)

	plaintext, err := m.padding.Unpad(buf, aesmodes.BlockSize)
	if err != nil {
		clear(buf)
		return nil, &aesmodes.UnpadError{Err: err}
	}
	return append(dst, plaintext...), nil
}

// crypt applies f to every block of src. Large inputs are split into one contiguous run of blocks per CPU.
func crypt(f func(dst, src []byte), dst, src []byte) {
	if len(src) < parallelThreshold {
		cryptBlocks(f, dst, src)
		return
	}

	blocks := len(src) / aesmodes.BlockSize
	workers := min(runtime.GOMAXPROCS(0), blocks)
	per := (blocks + workers - 1) / workers * aesmodes.BlockSize

	var wg sync.WaitGroup
	for i := 0; i < len(src); i += per {
		j := min(i+per, len(src))
		wg.Go(func() {
			cryptBlocks(f, dst[i:j], src[i:j])
		})
	}
	wg.Wait()
}

func cryptBlocks(f func(dst, src []byte), dst, src []byte) {
	for i := 0; i < len(src); i += aesmodes.BlockSize {
		f(dst[i:i+aesmodes.BlockSize], src[i:i+aesmodes.BlockSize])
	}
}

var _ aesmodes.BlockMode = (*Mode)(nil)
