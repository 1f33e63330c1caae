package cbc_test

import (
	"bytes"
	stdaes "crypto/aes"
	"crypto/cipher"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/codahale/aesmodes"
	"github.com/codahale/aesmodes/cbc"
	"github.com/codahale/aesmodes/internal/testdata"
	"github.com/codahale/aesmodes/padding"
)

func TestEncrypt(t *testing.T) {
	// NIST SP 800-38A, F.2.1
	key, _ := hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")
	iv, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172aae2d8a571e03ac9c9eb76fac45af8e5130c81c46a35ce411e5fbc1191a0a52eff69f2445df4f9b17ad2b417be66c3710")
	want := "7649abac8119b246cee98e9b12e9197d5086cb9b507219ee95db113a917678b273bed6b8e3c1743b7116e69e222295163ff1caa1681fac09120eca307586e1a7"

	m, err := cbc.NewAES(key, iv, padding.None)
	if err != nil {
		t.Fatal(err)
	}

	ct := m.Encrypt(nil, pt)
	if got := hex.EncodeToString(ct); got != want {
		t.Errorf("Encrypt() = %s, want = %s", got, want)
	}

	if got, want := m.IV(), ct[len(ct)-16:]; !bytes.Equal(got, want) {
		t.Errorf("IV() = %x, want = %x", got, want)
	}

	m.SetIV(iv)
	p2, err := m.Decrypt(nil, ct)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p2, pt) {
		t.Errorf("Decrypt(Encrypt(%x)) = %x", pt, p2)
	}
}

func TestMatchesStdlib(t *testing.T) {
	drbg := testdata.New("cbc stdlib")
	for _, keySize := range []int{16, 24, 32} {
		key, iv := drbg.Data(keySize), drbg.Data(16)
		plaintext := drbg.Data(drbg.Intn(15, 65))

		ref, _ := stdaes.NewCipher(key)
		padded := padding.PKCS7.Pad(plaintext, 16)
		want := make([]byte, len(padded))
		cipher.NewCBCEncrypter(ref, iv).CryptBlocks(want, padded)

		m, _ := cbc.NewAES(key, iv, padding.PKCS7)
		if got := m.Encrypt(nil, plaintext); !bytes.Equal(got, want) {
			t.Errorf("Encrypt(%x) = %x, want = %x", plaintext, got, want)
		}

		m, _ = cbc.NewAES(key, iv, padding.PKCS7)
		got, err := m.Decrypt(nil, want)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("Decrypt(%x) = %x, want = %x", want, got, plaintext)
		}
	}
}

func TestChainingAcrossCalls(t *testing.T) {
	drbg := testdata.New("cbc chaining")
	key, iv := drbg.Data(16), drbg.Data(16)
	a, b := drbg.Data(32), drbg.Data(48)

	oneShot, _ := cbc.NewAES(key, iv, padding.None)
	want := oneShot.Encrypt(nil, append(append([]byte(nil), a...), b...))

	split, _ := cbc.NewAES(key, iv, padding.None)
	got := split.Encrypt(nil, a)
	got = split.Encrypt(got, b)

	if !bytes.Equal(got, want) {
		t.Errorf("Encrypt(a)||Encrypt(b) = %x, want = %x", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	drbg := testdata.New("cbc round trip")
	key, iv := drbg.Data(32), drbg.Data(16)
	for n := range 80 {
		plaintext := drbg.Data(n)

		enc, _ := cbc.NewAES(key, iv, padding.PKCS7)
		ciphertext := enc.Encrypt(nil, plaintext)

		dec, _ := cbc.NewAES(key, iv, padding.PKCS7)
		got, err := dec.Decrypt(nil, ciphertext)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got, plaintext) {
			t.Errorf("Decrypt(Encrypt(%x)) = %x", plaintext, got)
		}
	}
}

func TestInPlace(t *testing.T) {
	key, iv := make([]byte, 16), make([]byte, 16)
	buf := make([]byte, 64, 64+16)

	want := func() []byte {
		m, _ := cbc.NewAES(key, iv, padding.PKCS7)
		return m.Encrypt(nil, buf)
	}()

	m, _ := cbc.NewAES(key, iv, padding.PKCS7)
	if got := m.Encrypt(buf[:0], buf); !bytes.Equal(got, want) {
		t.Errorf("in-place Encrypt() = %x, want = %x", got, want)
	}
}

func TestDecryptErrors(t *testing.T) {
	key, iv := make([]byte, 16), make([]byte, 16)

	t.Run("misaligned", func(t *testing.T) {
		m, _ := cbc.NewAES(key, iv, padding.PKCS7)
		if _, err := m.Decrypt(nil, make([]byte, 31)); !errors.Is(err, padding.ErrBadData) {
			t.Errorf("Decrypt(31 bytes) = %v, want = ErrBadData", err)
		}
	})

	t.Run("bad padding", func(t *testing.T) {
		enc, _ := cbc.NewAES(key, iv, padding.None)
		ciphertext := enc.Encrypt(nil, make([]byte, 16)) // decrypts to a final pad byte of zero

		dec, _ := cbc.NewAES(key, iv, padding.PKCS7)
		_, err := dec.Decrypt(nil, ciphertext)
		var ue *aesmodes.UnpadError
		if !errors.As(err, &ue) || !errors.Is(err, padding.ErrBadPadding) {
			t.Errorf("Decrypt() = %v, want = UnpadError(ErrBadPadding)", err)
		}
	})
}

func TestInvalidIV(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("The code did not panic")
		}
	}()

	_, _ = cbc.NewAES(make([]byte, 16), make([]byte, 15), padding.PKCS7)
}

func BenchmarkEncrypt(b *testing.B) {
	m, _ := cbc.NewAES(make([]byte, 16), make([]byte, 16), padding.None)
	input := make([]byte, 16*1024)
	output := make([]byte, 0, len(input))
	b.ReportAllocs()
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		m.Encrypt(output, input)
	}
}
