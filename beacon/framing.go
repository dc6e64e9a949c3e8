package beacon

// ModeTable bundles the fixed framing constants for one beacon mode.
type ModeTable struct {
	Sync        []byte
	Perm        []int
	SymbolCount int
	BitCount    int
	PayloadBits int
	GroupSizes  []int // radix-expansion digit-group sizes, summing to the message length
	Alphabet    string
}

// JT4Table is the JT4G framing configuration (13-character, base-42
// messages; spec.md §4.5).
var JT4Table = ModeTable{
	Sync:        jt4Sync,
	Perm:        jt4Perm,
	SymbolCount: JT4SymbolCount,
	BitCount:    JT4BitCount,
	PayloadBits: 96,
	GroupSizes:  []int{5, 5, 3},
	Alphabet:    "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ +-./?",
}

// PI4Table is the PI4 framing configuration (8-character, base-38
// messages; spec.md §4.5).
var PI4Table = ModeTable{
	Sync:        pi4Sync,
	Perm:        pi4Perm,
	SymbolCount: PI4SymbolCount,
	BitCount:    PI4BitCount,
	PayloadBits: 64,
	GroupSizes:  []int{8},
	Alphabet:    "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ /",
}

const overlap = 1

// SyncSearch slides tbl.Sync across cache and returns the starting
// index minimising XOR mismatch against each symbol's sync bit
// (spec.md §4.5 step 1).
func SyncSearch(cache []Symbol, tbl ModeTable) int {
	start, _ := SyncSearchScored(cache, tbl)
	return start
}

// SyncSearchScored is SyncSearch plus the winning position's mismatch
// count, published as a decode diagnostic (spec.md §4.5.1, §9's
// "Beacon results are Message | NoSync | FanoTimeout" note — the
// mismatch count is what a NoSync-adjacent Fano timeout has to show
// for itself).
func SyncSearchScored(cache []Symbol, tbl ModeTable) (start, mismatch int) {
	bestStart, bestMismatch := 0, -1
	limit := len(cache) - tbl.SymbolCount
	for start := 0; start <= limit; start++ {
		mismatch := 0
		for s := 0; s < tbl.SymbolCount; s++ {
			if cache[start+s*overlap].SyncBit != tbl.Sync[s] {
				mismatch++
			}
		}
		if bestMismatch == -1 || mismatch < bestMismatch {
			bestMismatch = mismatch
			bestStart = start
		}
	}
	return bestStart, bestMismatch
}

// ExtractBits pulls tbl.BitCount data bits out of cache starting just
// after bestStart, discarding the known-zero leading slot (spec.md
// §4.5 step 2).
func ExtractBits(cache []Symbol, bestStart int, tbl ModeTable) []byte {
	bits := make([]byte, tbl.BitCount)
	for i := 0; i < tbl.BitCount; i++ {
		bits[i] = cache[bestStart+(i+1)*overlap].DataBit
	}
	return bits
}

// Deinterleave applies tbl.Perm: d[perm[i]] = bits[i] (spec.md §4.5
// step 3).
func Deinterleave(bits []byte, tbl ModeTable) []byte {
	d := make([]byte, len(bits))
	for i, b := range bits {
		d[tbl.Perm[i]] = b
	}
	return d
}

// Interleave is Deinterleave's inverse, used by the encoder path:
// bits[i] = d[perm[i]].
func Interleave(d []byte, tbl ModeTable) []byte {
	bits := make([]byte, len(d))
	for i := range bits {
		bits[i] = d[tbl.Perm[i]]
	}
	return bits
}
