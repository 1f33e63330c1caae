// Package padding implements the padding schemes used by the block modes to stretch plaintext to a whole number of
// blocks.
package padding

import (
	"bytes"
	"errors"
)

var (
	// ErrBadData is returned when the data to unpad is not a whole number of blocks.
	ErrBadData = errors.New("padding: data is not a multiple of the block size")

	// ErrBadPadding is returned when the padding bytes are malformed.
	ErrBadPadding = errors.New("padding: bad padding")
)

// A Scheme adds padding before encryption and removes it after decryption.
type Scheme interface {
	// Pad returns a copy of data extended to a multiple of blockSize.
	Pad(data []byte, blockSize int) []byte

	// Unpad returns data with the padding removed. The result aliases data.
	Unpad(data []byte, blockSize int) ([]byte, error)
}

var (
	// None leaves data untouched in both directions. Plaintext must already be a whole number of blocks.
	None Scheme = none{} //nolint:gochecknoglobals // stateless

	// PKCS7 is the padding scheme from RFC 5652, section 6.3. It always adds between 1 and blockSize bytes, each
	// holding the number of bytes added.
	PKCS7 Scheme = pkcs7{} //nolint:gochecknoglobals // stateless
)

type none struct{}

func (none) Pad(data []byte, _ int) []byte {
	return bytes.Clone(data)
}

func (none) Unpad(data []byte, _ int) ([]byte, error) {
	return data, nil
}

type pkcs7 struct{}

func (pkcs7) Pad(data []byte, blockSize int) []byte {
	if blockSize < 1 || blockSize > 255 {
		panic("padding: invalid block size for PKCS#7")
	}

	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

func (pkcs7) Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, ErrBadData
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, ErrBadPadding
	}

	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, ErrBadPadding
		}
	}

	return data[:len(data)-n], nil
}
