package aes_test

import (
	"bytes"
	stdaes "crypto/aes"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/internal/testdata"
)

func TestCipher(t *testing.T) {
	tests := []struct {
		key string
		pt  string
		ct  string
	}{
		// FIPS 197, Appendix B
		{"2b7e151628aed2a6abf7158809cf4f3c", "3243f6a8885a308d313198a2e0370734", "3925841d02dc09fbdc118597196a0b32"},
		// FIPS 197, Appendix C
		{"000102030405060708090a0b0c0d0e0f", "00112233445566778899aabbccddeeff", "69c4e0d86a7b0430d8cdb78070b4c55a"},
		{"000102030405060708090a0b0c0d0e0f1011121314151617", "00112233445566778899aabbccddeeff", "dda97ca4864cdfe06eaf70a0ec0d7191"},
		{"000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f", "00112233445566778899aabbccddeeff", "8ea2b7ca516745bfeafc49904b496089"},
		// NIST SP 800-38A, F.1
		{"2b7e151628aed2a6abf7158809cf4f3c", "6bc1bee22e409f96e93d7e117393172a", "3ad77bb40d7a3660a89ecaf32466ef97"},
		{"8e73b0f7da0e6452c810f32b809079e562f8ead2522c6b7b", "6bc1bee22e409f96e93d7e117393172a", "bd334f1d6e45f25ff712a214571fa5cc"},
		{"603deb1015ca71be2b73aef0857d77811f352c073b6108d72d9810a30914dff4", "6bc1bee22e409f96e93d7e117393172a", "f3eed1bdb5d2a03c064b5a7e3db181f8"},
		// ASCII key "0123456789123456", ASCII plaintext "0987654321123456"
		{"30313233343536373839313233343536", "30393837363534333231313233343536", "d75833384b4e51d6e637861b273ab346"},
	}

	for _, tt := range tests {
		key, _ := hex.DecodeString(tt.key)
		pt, _ := hex.DecodeString(tt.pt)

		c, err := aes.New(key)
		if err != nil {
			t.Fatal(err)
		}

		ct := make([]byte, aes.BlockSize)
		c.Encrypt(ct, pt)
		if got, want := hex.EncodeToString(ct), tt.ct; got != want {
			t.Errorf("AES(%s, %s) = %s, want = %s", tt.key, tt.pt, got, want)
		}

		c.Decrypt(ct, ct)
		if got, want := hex.EncodeToString(ct), tt.pt; got != want {
			t.Errorf("AES^-1(%s, %s) = %s, want = %s", tt.key, tt.ct, got, want)
		}
	}
}

func TestRounds(t *testing.T) {
	for _, tt := range []struct {
		keySize, rounds int
	}{
		{16, 10}, {24, 12}, {32, 14},
	} {
		c, err := aes.New(make([]byte, tt.keySize))
		if err != nil {
			t.Fatal(err)
		}
		if got, want := c.Rounds(), tt.rounds; got != want {
			t.Errorf("Rounds() for %d-byte key = %d, want = %d", tt.keySize, got, want)
		}
		if got, want := c.BlockSize(), 16; got != want {
			t.Errorf("BlockSize() = %d, want = %d", got, want)
		}
	}
}

func TestKeySizeError(t *testing.T) {
	for _, n := range []int{0, 1, 15, 17, 20, 31, 33, 64} {
		_, err := aes.New(make([]byte, n))
		var kse aes.KeySizeError
		if !errors.As(err, &kse) || int(kse) != n {
			t.Errorf("New(%d bytes) = %v, want KeySizeError(%d)", n, err, n)
		}

		if b, err := aes.NewCipher(make([]byte, n)); b != nil || err == nil {
			t.Errorf("NewCipher(%d bytes) = %v, %v, want = nil, error", n, b, err)
		}
	}
}

func TestShortBlock(t *testing.T) {
	c, err := aes.New(make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}

	for name, f := range map[string]func(){
		"encrypt short src": func() { c.Encrypt(make([]byte, 16), make([]byte, 15)) },
		"encrypt short dst": func() { c.Encrypt(make([]byte, 15), make([]byte, 16)) },
		"decrypt short src": func() { c.Decrypt(make([]byte, 16), make([]byte, 15)) },
		"decrypt short dst": func() { c.Decrypt(make([]byte, 15), make([]byte, 16)) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("The code did not panic")
				}
			}()

			f()
		})
	}
}

func TestRoundTrip(t *testing.T) {
	drbg := testdata.New("aes round trip")
	for _, keySize := range []int{16, 24, 32} {
		c, err := aes.New(drbg.Data(keySize))
		if err != nil {
			t.Fatal(err)
		}

		for range 100 {
			block := drbg.Data(aes.BlockSize)
			out := make([]byte, aes.BlockSize)

			c.Encrypt(out, block)
			c.Decrypt(out, out)
			if !bytes.Equal(out, block) {
				t.Errorf("D(E(%x)) = %x", block, out)
			}

			c.Decrypt(out, block)
			c.Encrypt(out, out)
			if !bytes.Equal(out, block) {
				t.Errorf("E(D(%x)) = %x", block, out)
			}
		}
	}
}

func FuzzCipher(f *testing.F) {
	drbg := testdata.New("aes fuzz")
	for _, keySize := range []int{16, 24, 32} {
		f.Add(drbg.Data(keySize), drbg.Data(aes.BlockSize))
	}

	f.Fuzz(func(t *testing.T, key, block []byte) {
		if len(block) != aes.BlockSize {
			t.Skip()
		}

		c, err := aes.New(key)
		if err != nil {
			t.Skip()
		}

		ref, err := stdaes.NewCipher(key)
		if err != nil {
			t.Fatal(err)
		}

		got, want := make([]byte, aes.BlockSize), make([]byte, aes.BlockSize)
		c.Encrypt(got, block)
		ref.Encrypt(want, block)
		if !bytes.Equal(got, want) {
			t.Errorf("Encrypt(%x) = %x, want = %x", block, got, want)
		}

		c.Decrypt(got, block)
		ref.Decrypt(want, block)
		if !bytes.Equal(got, want) {
			t.Errorf("Decrypt(%x) = %x, want = %x", block, got, want)
		}
	})
}

func BenchmarkEncrypt(b *testing.B) {
	for _, keySize := range []int{16, 24, 32} {
		b.Run(fmt.Sprintf("AES-%d", keySize*8), func(b *testing.B) {
			c, _ := aes.New(make([]byte, keySize))
			block := make([]byte, aes.BlockSize)
			b.ReportAllocs()
			b.SetBytes(aes.BlockSize)
			for b.Loop() {
				c.Encrypt(block, block)
			}
		})
	}
}

func BenchmarkDecrypt(b *testing.B) {
	c, _ := aes.New(make([]byte, 16))
	block := make([]byte, aes.BlockSize)
	b.ReportAllocs()
	b.SetBytes(aes.BlockSize)
	for b.Loop() {
		c.Decrypt(block, block)
	}
}

func BenchmarkExpandKey(b *testing.B) {
	key := make([]byte, 32)
	b.ReportAllocs()
	for b.Loop() {
		_, _ = aes.New(key)
	}
}
