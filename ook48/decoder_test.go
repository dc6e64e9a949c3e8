package ook48

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleBinSlots(t []float64) [][]float64 {
	slots := make([][]float64, len(t))
	for i, v := range t {
		slots[i] = []float64{v}
	}
	return slots
}

// TestConfidenceGateTiedMiddleValues covers scenario S3: the 4th and
// 5th largest values are equal, so confidence is 0 and the gate emits
// UnknownChar.
func TestConfidenceGateTiedMiddleValues(t *testing.T) {
	d := NewDecoder(ModeNormal, false, 0)
	r := d.Decode(singleBinSlots([]float64{50, 51, 49, 50, 51, 50, 49, 51}))
	require.Equal(t, LowConfidence, r.Kind)
	assert.Equal(t, byte(UnknownChar), r.Char)
	assert.InDelta(t, 0.0, r.Confidence, 1e-9)
}

// TestDecoderRecoversEncodedCharacter builds a clean 8-slot frame from
// the alphabet word for a character and checks the decoder recovers it
// with high confidence (scenario S1's decode half).
func TestDecoderRecoversEncodedCharacter(t *testing.T) {
	d := NewDecoder(ModeNormal, false, 0)
	word := EncodeByte('T')

	t8 := make([]float64, 8)
	for i := 0; i < 8; i++ {
		if word&(1<<uint(7-i)) != 0 {
			t8[i] = 100
		} else {
			t8[i] = 1
		}
	}

	r := d.Decode(singleBinSlots(t8))
	require.Equal(t, Decoded, r.Kind)
	assert.Equal(t, byte('T'), r.Char)
}

// TestHalfRateCombiningMatchesSingleFrame covers P4: two identical
// 8-symbol frames, combined, decode the same as a doubled single frame.
func TestHalfRateCombiningMatchesSingleFrame(t *testing.T) {
	base := []float64{10, 90, 15, 20, 85, 25, 30, 95}

	single := NewDecoder(ModeNormal, false, 0)
	doubled := make([]float64, 8)
	for i, v := range base {
		doubled[i] = v * 2
	}
	rSingle := single.Decode(singleBinSlots(doubled))

	halfRate := NewDecoder(ModeNormal, true, 0)
	frame16 := append(append([]float64(nil), base...), base...)
	rHalf := halfRate.Decode(singleBinSlots(frame16))

	require.Equal(t, rSingle.Kind, rHalf.Kind)
	assert.Equal(t, rSingle.Char, rHalf.Char)
}

func TestAltModePicksHighestSpreadBin(t *testing.T) {
	d := NewDecoder(ModeAlt, false, 0)
	// bin 0 is flat (spread 0); bin 1 carries the real signal.
	slots := make([][]float64, 8)
	word := EncodeByte('N')
	for i := 0; i < 8; i++ {
		v := 1.0
		if word&(1<<uint(7-i)) != 0 {
			v = 100
		}
		slots[i] = []float64{5, v}
	}
	r := d.Decode(slots)
	require.Equal(t, Decoded, r.Kind)
	assert.Equal(t, byte('N'), r.Char)
}

func TestRainscatterSumsAllBins(t *testing.T) {
	d := NewDecoder(ModeRainscatter, false, 0)
	word := EncodeByte('Q')
	slots := make([][]float64, 8)
	for i := 0; i < 8; i++ {
		lo, hi := 1.0, 1.0
		if word&(1<<uint(7-i)) != 0 {
			hi = 100
		}
		slots[i] = []float64{lo, hi, lo}
	}
	r := d.Decode(slots)
	require.Equal(t, Decoded, r.Kind)
	assert.Equal(t, byte('Q'), r.Char)
}
