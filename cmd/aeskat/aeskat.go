// Command aeskat runs the known-answer self test and reports the throughput of each mode next to its crypto/cipher
// counterpart.
package main

import (
	stdaes "crypto/aes"
	"crypto/cipher"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/codahale/aesmodes/aes"
	"github.com/codahale/aesmodes/cbc"
	"github.com/codahale/aesmodes/ctr"
	"github.com/codahale/aesmodes/ecb"
	"github.com/codahale/aesmodes/gcm"
	"github.com/codahale/aesmodes/internal/selftest"
	"github.com/codahale/aesmodes/padding"
	"github.com/codahale/aesmodes/xts"
	xxts "golang.org/x/crypto/xts"
	"golang.org/x/sys/cpu"
)

func main() {
	var (
		size      = flag.Int("size", 16*1024, "the message size in bytes for each benchmark")
		duration  = flag.Duration("duration", time.Second, "how long to run each benchmark")
		skipBench = flag.Bool("skip-bench", false, "only run the self test")
	)
	flag.Parse()

	log := slog.New(slog.Default().Handler())
	log.Info("starting", "x86_aes", cpu.X86.HasAES, "arm64_aes", cpu.ARM64.HasAES)

	if err := selftest.Run(); err != nil {
		log.Error("self test failed", "err", err)
		os.Exit(1)
	}
	log.Info("self test passed", "checks", len(selftest.Checks()))

	if *skipBench {
		return
	}

	if *size <= 0 || *size%stdaes.BlockSize != 0 {
		log.Error("invalid message size", "size", *size)
		os.Exit(2)
	}

	key, iv, nonce := make([]byte, 16), make([]byte, 16), make([]byte, gcm.NonceSize)
	input := make([]byte, *size)
	output := make([]byte, *size+gcm.TagSize)

	ours, err := aes.New(key)
	if err != nil {
		panic(err)
	}
	ref, err := stdaes.NewCipher(key)
	if err != nil {
		panic(err)
	}
	xtsKey := make([]byte, 32)
	refXTS, err := xxts.NewCipher(stdaes.NewCipher, xtsKey)
	if err != nil {
		panic(err)
	}
	refGCM, err := cipher.NewGCM(ref)
	if err != nil {
		panic(err)
	}

	for _, b := range []struct {
		mode      string
		ours, ref func()
	}{
		{
			mode: "block",
			ours: func() { ours.Encrypt(output, input) },
			ref:  func() { ref.Encrypt(output, input) },
		},
		{
			mode: "ecb",
			ours: func() { ecb.New(ours, padding.None).Encrypt(output[:0], input) },
			ref: func() {
				for i := 0; i < len(input); i += stdaes.BlockSize {
					ref.Encrypt(output[i:], input[i:])
				}
			},
		},
		{
			mode: "cbc",
			ours: func() { cbc.New(ours, iv, padding.None).Encrypt(output[:0], input) },
			ref:  func() { cipher.NewCBCEncrypter(ref, iv).CryptBlocks(output, input) },
		},
		{
			mode: "ctr",
			ours: func() { ctr.New(ours, iv).XORKeyStream(output, input) },
			ref:  func() { cipher.NewCTR(ref, iv).XORKeyStream(output, input) },
		},
		{
			mode: "xts",
			ours: func() {
				c, _ := xts.NewAES(xtsKey, xts.SectorTweak(0))
				c.Encrypt(output[:0], input)
			},
			ref: func() { refXTS.Encrypt(output[:*size], input, 0) },
		},
		{
			mode: "gcm",
			ours: func() { gcm.NewAEAD(ours).Seal(output[:0], nonce, input, nil) },
			ref:  func() { refGCM.Seal(output[:0], nonce, input, nil) },
		},
	} {
		n := *size
		if b.mode == "block" {
			n = stdaes.BlockSize
		}
		log.Info("benchmark", "mode", b.mode,
			"ours_mbps", throughput(b.ours, n, *duration),
			"stdlib_mbps", throughput(b.ref, n, *duration),
		)
	}
}

// throughput calls f repeatedly for about d and returns the rate in megabytes per second, given n bytes per call.
func throughput(f func(), n int, d time.Duration) float64 {
	var calls int
	start := time.Now()
	for time.Since(start) < d {
		f()
		calls++
	}
	return float64(calls*n) / time.Since(start).Seconds() / 1e6
}
