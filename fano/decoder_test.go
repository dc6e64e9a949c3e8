package fano

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestEncodeDecodeRoundTripNoiseless covers P5: for any payload, a
// noiseless encode/expand/decode cycle recovers the original bits.
func TestEncodeDecodeRoundTripNoiseless(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(8, 96).Draw(t, "n")
		payload := make([]byte, n)
		for i := range payload {
			payload[i] = byte(rapid.IntRange(0, 1).Draw(t, "bit"))
		}

		channelBits := Encode(payload)
		soft := ExpandToSoft(channelBits)

		d := NewDecoder()
		got, ok := d.Decode(soft, n+TailBits)
		require.True(t, ok)
		assert.Equal(t, payload, got)
	})
}

func TestParityTableMatchesPopcountParity(t *testing.T) {
	for v := 0; v < 256; v++ {
		want := byte(0)
		x := v
		for x != 0 {
			want ^= byte(x & 1)
			x >>= 1
		}
		assert.Equal(t, want, parityTable8[v])
	}
}

func TestMetricTableFavoursMatchingHypothesis(t *testing.T) {
	assert.Greater(t, mettab[1][255], mettab[0][255], "a strong 1 symbol must score higher against hypothesis 1")
	assert.Greater(t, mettab[0][0], mettab[1][0], "a strong 0 symbol must score higher against hypothesis 0")
}
