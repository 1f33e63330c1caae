// Package selftest checks the cipher and every mode against published known-answer vectors.
package selftest

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/cbc"
	"github.com/codahale/aesmodes/ctr"
	"github.com/codahale/aesmodes/ecb"
	"github.com/codahale/aesmodes/gcm"
	"github.com/codahale/aesmodes/ghash"
	"github.com/codahale/aesmodes/padding"
	"github.com/codahale/aesmodes/xts"
)

// A Check is a single known-answer test.
type Check struct {
	Name string
	Run  func() (got []byte, want string, err error)
}

// MismatchError is returned when a check produces the wrong output.
type MismatchError struct {
	Name      string
	Got, Want string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("selftest: %s: got %s, want %s", e.Name, e.Got, e.Want)
}

// Checks returns the known-answer tests in the order Run executes them.
func Checks() []Check {
	return []Check{
		{"AES-128 FIPS-197 C.1", func() ([]byte, string, error) {
			return block("000102030405060708090a0b0c0d0e0f", "00112233445566778899aabbccddeeff",
				"69c4e0d86a7b0430d8cdb78070b4c55a")
		}},
		{"AES-192 FIPS-197 C.2", func() ([]byte, string, error) {
			return block("000102030405060708090a0b0c0d0e0f1011121314151617", "00112233445566778899aabbccddeeff",
				"dda97ca4864cdfe06eaf70a0ec0d7191")
		}},
		{"AES-256 FIPS-197 C.3", func() ([]byte, string, error) {
			return block("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f",
				"00112233445566778899aabbccddeeff", "8ea2b7ca516745bfeafc49904b496089")
		}},
		{"ECB SP 800-38A F.1.1", func() ([]byte, string, error) {
			m, err := ecb.NewAES(decode(sp80038aKey), padding.None)
			if err != nil {
				return nil, "", err
			}
			return m.Encrypt(nil, decode(sp80038aBlock)), "3ad77bb40d7a3660a89ecaf32466ef97", nil
		}},
		{"CBC SP 800-38A F.2.1", func() ([]byte, string, error) {
			m, err := cbc.NewAES(decode(sp80038aKey), decode("000102030405060708090a0b0c0d0e0f"), padding.None)
			if err != nil {
				return nil, "", err
			}
			return m.Encrypt(nil, decode(sp80038aBlock)), "7649abac8119b246cee98e9b12e9197d", nil
		}},
		{"CTR SP 800-38A F.5.1", func() ([]byte, string, error) {
			s, err := ctr.NewAES(decode(sp80038aKey), decode("f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff"))
			if err != nil {
				return nil, "", err
			}
			return s.Encrypt(nil, decode(sp80038aBlock)), "874d6191b620e3261bef6864990db6ce", nil
		}},
		{"XTS IEEE 1619 vector 2", func() ([]byte, string, error) {
			c, err := xts.NewAES(append(bytes.Repeat([]byte{0x11}, 16), bytes.Repeat([]byte{0x22}, 16)...),
				xts.SectorTweak(0x3333333333))
			if err != nil {
				return nil, "", err
			}
			return c.Encrypt(nil, bytes.Repeat([]byte{0x44}, 32)),
				"c454185e6a16936e39334038acef838bfb186fff7480adc4289382ecd6d394f0", nil
		}},
		{"XTS IEEE 1619 vector 15", func() ([]byte, string, error) {
			c, err := xts.NewAES(decode("fffefdfcfbfaf9f8f7f6f5f4f3f2f1f0bfbebdbcbbbab9b8b7b6b5b4b3b2b1b0"),
				xts.SectorTweak(0x123456789a))
			if err != nil {
				return nil, "", err
			}
			return c.Encrypt(nil, decode("000102030405060708090a0b0c0d0e0f10")), "6c1625db4671522d3d7599601de7ca09ed", nil
		}},
		{"GHASH", func() ([]byte, string, error) {
			g := ghash.New(decode("66e94bd4ef8a2c3b884cfa59ca342b2e"), nil)
			_, _ = g.Write(decode("0388dace60b6a392f328c2b971b2fe78"))
			return g.Sum(nil), "f38cbb1ad69223dcc3457ae5b6b0f885", nil
		}},
		{"GCM test case 4", func() ([]byte, string, error) {
			g, err := gcm.NewAES(decode("feffe9928665731c6d6a8f9467308308"), decode("cafebabefacedbaddecaf888"),
				decode("feedfacedeadbeeffeedfacedeadbeefabaddad2"))
			if err != nil {
				return nil, "", err
			}
			_, tag := g.Encrypt(nil, decode("d9313225f88406e5a55909c5aff5269a86a7a9531534f7da2e4c303d8a318a721c3c0c95956809532fcf0e2449a6b525b16aedf5aa0de657ba637b39"))
			return tag, "5bc94fbc3221a5db94fae95ae7121a47", nil
		}},
	}
}

// Run executes every check and returns the errors of those which failed, joined.
func Run() error {
	var errs []error
	for _, c := range Checks() {
		got, want, err := c.Run()
		if err != nil {
			errs = append(errs, fmt.Errorf("selftest: %s: %w", c.Name, err))
			continue
		}
		if g := hex.EncodeToString(got); g != want {
			errs = append(errs, &MismatchError{Name: c.Name, Got: g, Want: want})
		}
	}
	return errors.Join(errs...)
}

const (
	sp80038aKey   = "2b7e151628aed2a6abf7158809cf4f3c"
	sp80038aBlock = "6bc1bee22e409f96e93d7e117393172a"
)

// block encrypts one block, then checks that decrypting it restores the plaintext.
func block(key, plaintext, want string) ([]byte, string, error) {
	c, err := aes.New(decode(key))
	if err != nil {
		return nil, "", err
	}

	ct := make([]byte, aes.BlockSize)
	c.Encrypt(ct, decode(plaintext))

	pt := make([]byte, aes.BlockSize)
	c.Decrypt(pt, ct)
	if !bytes.Equal(pt, decode(plaintext)) {
		return nil, "", errors.New("decryption does not invert encryption")
	}
	return ct, want, nil
}

func decode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
