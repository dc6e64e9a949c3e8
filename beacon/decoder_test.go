package beacon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestJT4Loopback covers scenario S4: packing a message, encoding,
// interleaving, and Fano-decoding it back recovers the original text.
func TestJT4Loopback(t *testing.T) {
	msg := "G4EML IO91WM"
	symbols := Encode(msg, JT4Table, false)
	require.Len(t, symbols, JT4Table.SymbolCount)

	dec := NewJT4Decoder()
	result := dec.Decode(symbols, 12.5)

	require.Equal(t, Message, result.Outcome)
	assert.Equal(t, msg+"0", result.Text, "the 13th character slot pads with the alphabet's zero digit")
}

func TestPI4Loopback(t *testing.T) {
	msg := "CALLSIGN"
	symbols := Encode(msg, PI4Table, true)
	require.Len(t, symbols, PI4Table.SymbolCount)

	dec := NewPI4Decoder()
	result := dec.Decode(symbols, 3.0)

	require.Equal(t, Message, result.Outcome)
	assert.Equal(t, msg, result.Text)
}

func TestSyncSearchFindsAlignedStart(t *testing.T) {
	symbols := Encode("TEST MESSAGE", JT4Table, false)
	// pad extra noise symbols so the search has margin to explore.
	padded := append(append([]Symbol{{SyncBit: 1}, {SyncBit: 0}}, symbols...), Symbol{SyncBit: 1})
	start := SyncSearch(padded, JT4Table)
	assert.Equal(t, 2, start)
}

func TestDecodePublishesDiagnosticsOnSuccess(t *testing.T) {
	symbols := Encode("G4EML IO91WM", JT4Table, false)
	dec := NewJT4Decoder()
	result := dec.Decode(symbols, 9.0)

	require.Equal(t, Message, result.Outcome)
	assert.Equal(t, 0, result.SyncMismatch, "a clean sync-aligned encode should match the sync vector exactly")
	assert.Greater(t, result.FanoCycles, 0)
}
