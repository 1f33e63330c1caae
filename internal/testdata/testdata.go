// Package testdata provides a deterministic source of pseudo-random bytes for tests, fuzz seeds, and benchmarks.
package testdata

import (
	"encoding/binary"

	"github.com/cloudflare/circl/xof"
)

// DRBG is a deterministic random bit generator keyed by a domain string. It is not suitable for generating keys.
type DRBG struct {
	xof xof.XOF
}

// New returns a DRBG whose output is determined entirely by domain.
func New(domain string) *DRBG {
	x := xof.SHAKE128.New()
	_, _ = x.Write([]byte(domain))
	return &DRBG{xof: x}
}

// Data returns the next n bytes of output.
func (d *DRBG) Data(n int) []byte {
	b := make([]byte, n)
	_, _ = d.xof.Read(b)
	return b
}

// Block returns the next 16 bytes of output as an array.
func (d *DRBG) Block() [16]byte {
	var b [16]byte
	_, _ = d.xof.Read(b[:])
	return b
}

// Intn returns a value in [lo, hi). It is slightly biased, which doesn't matter for picking test lengths.
func (d *DRBG) Intn(lo, hi int) int {
	var b [8]byte
	_, _ = d.xof.Read(b[:])
	return lo + int(binary.LittleEndian.Uint64(b[:])%uint64(hi-lo)) //nolint:gosec // hi > lo
}
