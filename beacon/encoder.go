package beacon

import "github.com/kf0rbx/narrowcore/fano"

// Encode packs msg, runs it through the Fano encoder and the mode's
// interleaver, and assembles a full SymbolCount-long symbol sequence
// aligned at position 0 — the loopback counterpart to Decode, used to
// exercise the pipeline end to end (spec.md §8 scenario S4).
func Encode(msg string, tbl ModeTable, pi4 bool) []Symbol {
	var payload []byte
	if pi4 {
		payload = bytesToBits(PackPI4(msg))
	} else {
		payload = bytesToBits(PackJT4(msg))
	}

	channelBits := fano.Encode(payload)
	interleaved := Interleave(channelBits, tbl)

	symbols := make([]Symbol, tbl.SymbolCount)
	symbols[0] = Symbol{SyncBit: tbl.Sync[0]}
	for i := 0; i < tbl.BitCount; i++ {
		symbols[i+1] = Symbol{SyncBit: tbl.Sync[i+1], DataBit: interleaved[i]}
	}
	return symbols
}
