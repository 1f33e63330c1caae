package aes

// state is the 4x4 byte matrix the round functions operate on, stored as four columns. Byte i of a block lives at
// column i/4, row i%4, so a column is also a key schedule word.
type state [4][4]byte

func loadState(b []byte) (s state) {
	_ = b[15] // bounds check hint
	for i := range 16 {
		s[i/4][i%4] = b[i]
	}
	return s
}

func (s *state) store(b []byte) {
	_ = b[15] // bounds check hint
	for i := range 16 {
		b[i] = s[i/4][i%4]
	}
}

// subBytes replaces every byte with its entry in box.
func (s *state) subBytes(box *[256]byte) {
	for c := range 4 {
		for r := range 4 {
			s[c][r] = box[s[c][r]]
		}
	}
}

// shiftRows rotates row r left by r positions.
func (s *state) shiftRows() {
	var t state
	for c := range 4 {
		for r := range 4 {
			t[c][r] = s[(c+r)%4][r]
		}
	}
	*s = t
}

// invShiftRows rotates row r right by r positions.
func (s *state) invShiftRows() {
	var t state
	for c := range 4 {
		for r := range 4 {
			t[(c+r)%4][r] = s[c][r]
		}
	}
	*s = t
}

// mixColumns multiplies each column by the circulant matrix whose first row is m.
func (s *state) mixColumns(m *[4]byte) {
	for c := range 4 {
		col := s[c]
		for r := range 4 {
			s[c][r] = gmul(m[0], col[r]) ^ gmul(m[1], col[(r+1)%4]) ^ gmul(m[2], col[(r+2)%4]) ^ gmul(m[3], col[(r+3)%4])
		}
	}
}

func (s *state) addRoundKey(k *state) {
	for c := range 4 {
		for r := range 4 {
			s[c][r] ^= k[c][r]
		}
	}
}
