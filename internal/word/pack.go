package word

// AppendUnpacked appends the characters packed into c, most significant byte
// first, skipping any zero bytes. A lone character constant like 'a' lives in
// the low byte, so its zero high bytes produce nothing, while 'abc' produces
// all three characters in source order.
func AppendUnpacked(dst []byte, c Word) []byte {
	u := uint(c)
	for i := Size - 1; i >= 0; i-- {
		if b := byte(u >> (uint(i) * 8)); b != 0 {
			dst = append(dst, b)
		}
	}
	return dst
}

// Pack folds chars into a word the way a B character constant is compiled:
// each character shifts the prior ones up by a byte. Only the last Size
// characters survive.
func Pack(chars []byte) Word {
	var u uint
	for _, ch := range chars {
		u = u<<8 | uint(ch)
	}
	return Word(u)
}
