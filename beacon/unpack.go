package beacon

import "strings"

// charsToDigits maps each byte of msg through alphabet (case-folded to
// upper for letters), padding with digit 0 up to n and truncating
// beyond n.
func charsToDigits(msg string, alphabet string, n int) []byte {
	digits := make([]byte, n)
	up := strings.ToUpper(msg)
	for i := 0; i < n; i++ {
		if i >= len(up) {
			continue
		}
		idx := strings.IndexByte(alphabet, up[i])
		if idx < 0 {
			idx = 0
		}
		digits[i] = byte(idx)
	}
	return digits
}

// digitsToChars is charsToDigits's inverse, mapping each digit back to
// its alphabet character. A digit value equal to or beyond
// len(alphabet) (undefined per spec.md §9's open question on PI4's
// unused range 38..41) renders as '?'.
func digitsToChars(digits []byte, alphabet string) string {
	var b strings.Builder
	for _, d := range digits {
		if int(d) < len(alphabet) {
			b.WriteByte(alphabet[d])
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

func radixToInt(digits []byte, base uint64) uint64 {
	var v uint64
	for _, d := range digits {
		v = v*base + uint64(d)
	}
	return v
}

func intToRadix(v uint64, ndigits int, base uint64) []byte {
	digits := make([]byte, ndigits)
	for i := ndigits - 1; i >= 0; i-- {
		digits[i] = byte(v % base)
		v /= base
	}
	return digits
}

func be32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putBE32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func be64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

func putBE64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

// PackJT4 encodes an up-to-13-character message into the 12-byte JT4
// payload (spec.md §4.5's inverse: three base-42 integers packed
// big-endian).
func PackJT4(msg string) []byte {
	digits := charsToDigits(msg, JT4Table.Alphabet, 13)
	n1 := uint32(radixToInt(digits[0:5], 42))
	n2 := uint32(radixToInt(digits[5:10], 42))
	n3 := uint32(radixToInt(digits[10:13], 42))

	out := make([]byte, 12)
	putBE32(out[0:4], n1)
	putBE32(out[4:8], n2)
	putBE32(out[8:12], n3)
	return out
}

// UnpackJT4 recovers the 13-character message from a 12-byte decode
// (spec.md §4.5).
func UnpackJT4(dec []byte) string {
	n1 := be32(dec[0:4])
	n2 := be32(dec[4:8])
	n3 := be32(dec[8:12])

	var digits []byte
	digits = append(digits, intToRadix(uint64(n1)%pow64(42, 5), 5, 42)...)
	digits = append(digits, intToRadix(uint64(n2)%pow64(42, 5), 5, 42)...)
	digits = append(digits, intToRadix(uint64(n3)%pow64(42, 3), 3, 42)...)
	return digitsToChars(digits, JT4Table.Alphabet)
}

// PackPI4 encodes an up-to-8-character message into the 8-byte PI4
// payload: a base-38 integer shifted left by 22 bits (spec.md §4.5's
// inverse).
func PackPI4(msg string) []byte {
	digits := charsToDigits(msg, PI4Table.Alphabet, 8)
	value := radixToInt(digits, 38)
	v64 := value << 22

	out := make([]byte, 8)
	putBE64(out, v64)
	return out
}

// UnpackPI4 recovers the 8-character message from an 8-byte decode
// (spec.md §4.5).
func UnpackPI4(dec []byte) string {
	v64 := be64(dec)
	value := v64 >> 22
	digits := intToRadix(value%pow64(38, 8), 8, 38)
	return digitsToChars(digits, PI4Table.Alphabet)
}

func pow64(base uint64, exp int) uint64 {
	v := uint64(1)
	for i := 0; i < exp; i++ {
		v *= base
	}
	return v
}
