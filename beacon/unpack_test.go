package beacon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestJT4UnpackUsesOnlyAlphabetCharacters covers P6.
func TestJT4UnpackUsesOnlyAlphabetCharacters(t *testing.T) {
	dec := []byte{0x55, 0xAA, 0x37, 0x0F, 0x12, 0x34, 0x56, 0x78, 0x9A, 0xBC, 0xDE, 0xF0}
	text := UnpackJT4(dec)
	assert.Len(t, text, 13)
	for _, ch := range text {
		assert.True(t, strings.ContainsRune(JT4Table.Alphabet, ch), "character %q must be drawn from the JT4 alphabet", ch)
	}
}

// TestPI4UnpackAllZero covers P7.
func TestPI4UnpackAllZero(t *testing.T) {
	dec := make([]byte, 8)
	assert.Equal(t, "00000000", UnpackPI4(dec))
}

func TestJT4PackUnpackRoundTrip(t *testing.T) {
	msg := "G4EML IO91WM0"
	dec := PackJT4(msg)
	assert.Equal(t, msg, UnpackJT4(dec))
}

func TestPI4PackUnpackRoundTrip(t *testing.T) {
	msg := "CALL1234"
	dec := PackPI4(msg)
	assert.Equal(t, msg, UnpackPI4(dec))
}
