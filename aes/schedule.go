package aes

// expandKey runs the AES key schedule, returning rounds+1 round keys. The key must be 16, 24, or 32 bytes long.
func expandKey(key []byte) []state {
	nk := len(key) / 4
	rounds := nk + 6

	w := make([][4]byte, 4*(rounds+1))
	for i := range nk {
		copy(w[i][:], key[4*i:4*i+4])
	}

	for i := nk; i < len(w); i++ {
		t := w[i-1]
		switch {
		case i%nk == 0:
			t = subWord(rotWord(t))
			t[0] ^= rcon[i/nk-1]
		case nk > 6 && i%nk == 4:
			t = subWord(t)
		}
		for j := range 4 {
			w[i][j] = w[i-nk][j] ^ t[j]
		}
	}

	roundKeys := make([]state, rounds+1)
	for i := range roundKeys {
		roundKeys[i] = state{w[4*i], w[4*i+1], w[4*i+2], w[4*i+3]}
	}
	return roundKeys
}

func rotWord(w [4]byte) [4]byte {
	return [4]byte{w[1], w[2], w[3], w[0]}
}

func subWord(w [4]byte) [4]byte {
	return [4]byte{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}
