// Package ook48 implements the 9-baud, GPS-synchronous on-off-keyed
// mode: its 4-of-8 constant-weight alphabet, symbol-paced encoder, and
// confidence-gated decoder (spec.md §4.3, §4.4).
package ook48

import "math/bits"

// alphabet holds every 8-bit word of Hamming weight 4, in ascending
// numeric order; there are C(8,4) = 70 such words (spec.md §4.3).
var alphabet = buildAlphabet()

func buildAlphabet() [70]byte {
	var a [70]byte
	n := 0
	for v := 0; v <= 0xFF; v++ {
		if bits.OnesCount8(byte(v)) == 4 {
			a[n] = byte(v)
			n++
		}
	}
	if n != 70 {
		panic("ook48: constant-weight alphabet did not enumerate 70 words")
	}
	return a
}

// decode4from8 maps every possible 8-bit word to its alphabet index,
// or to invalidIndex if the word does not have Hamming weight 4
// (spec.md §4.4's 256-entry inverse table).
var decode4from8 = buildDecodeTable()

const invalidIndex = -1

func buildDecodeTable() [256]int16 {
	var t [256]int16
	for i := range t {
		t[i] = invalidIndex
	}
	for idx, word := range alphabet {
		t[word] = int16(idx)
	}
	return t
}

// indexForChar implements the encoder's character -> alphabet-index
// mapping (spec.md §4.3).
func indexForChar(ch byte) byte {
	switch {
	case ch == '\r' || ch == '\n':
		return 0
	case ch >= 0x20 && ch <= 0x5F:
		return ch - 31
	case ch >= 0x61 && ch <= 0x7A:
		return ch - 63
	default:
		return 69
	}
}

// charForIndex is the decoder's inverse of indexForChar. Index 0
// always reconstructs as CR; indices in 1..64 reconstruct the
// printable ASCII range 0x20..0x5F (uppercase only — the encoder folds
// lowercase into this same range, so the fold is not invertible and is
// not expected to be); index 69 and any otherwise-unassigned index in
// 65..68 reconstruct as the "null" placeholder byte 0x00.
func charForIndex(idx byte) byte {
	switch {
	case idx == 0:
		return '\r'
	case idx >= 1 && idx <= 64:
		return idx + 31
	default:
		return 0x00
	}
}

// EncodeByte returns the 8-bit constant-weight word transmitted for ch.
func EncodeByte(ch byte) byte {
	return alphabet[indexForChar(ch)]
}

// DecodeWord looks up the alphabet index for a hard 8-bit word. ok is
// false if word does not have Hamming weight 4 and therefore reconstructs
// no character (spec.md §4.4's "entries not corresponding to valid
// weight-4 words ... emit as no character").
func DecodeWord(word byte) (ch byte, ok bool) {
	idx := decode4from8[word]
	if idx == invalidIndex {
		return 0, false
	}
	return charForIndex(byte(idx)), true
}
