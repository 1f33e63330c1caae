package aes

// encryptBlock runs the forward cipher over one block: an initial AddRoundKey, rounds-1 full rounds, and a final round
// without MixColumns.
func encryptBlock(roundKeys []state, dst, src []byte) {
	rounds := len(roundKeys) - 1

	s := loadState(src)
	s.addRoundKey(&roundKeys[0])
	for i := 1; i < rounds; i++ {
		s.encRound(&roundKeys[i])
	}
	s.encLastRound(&roundKeys[rounds])
	s.store(dst)
}

// decryptBlock undoes encryptBlock, using the same round keys from last to first.
func decryptBlock(roundKeys []state, dst, src []byte) {
	rounds := len(roundKeys) - 1

	s := loadState(src)
	s.addRoundKey(&roundKeys[rounds])
	for i := rounds - 1; i > 0; i-- {
		s.decRound(&roundKeys[i])
	}
	s.decLastRound(&roundKeys[0])
	s.store(dst)
}

// encRound is one full forward round, the transform x86 calls AESENC.
func (s *state) encRound(k *state) {
	s.subBytes(&sbox)
	s.shiftRows()
	s.mixColumns(&forwardMix)
	s.addRoundKey(k)
}

// encLastRound is the final forward round, which skips MixColumns.
func (s *state) encLastRound(k *state) {
	s.subBytes(&sbox)
	s.shiftRows()
	s.addRoundKey(k)
}

// decRound is one full round of the FIPS-197 inverse cipher. It pairs the inverse of one round's ShiftRows and
// SubBytes with the inverse of the previous round's MixColumns.
func (s *state) decRound(k *state) {
	s.invShiftRows()
	s.subBytes(&rsbox)
	s.addRoundKey(k)
	s.mixColumns(&inverseMix)
}

// decLastRound is the final round of the inverse cipher, which skips the inverse MixColumns.
func (s *state) decLastRound(k *state) {
	s.invShiftRows()
	s.subBytes(&rsbox)
	s.addRoundKey(k)
}
