// Package beacon implements the JT4G and PI4 beacon decode pipeline:
// tone detection, sync search, de-interleaving, Fano decode, and
// message unpacking (spec.md §4.5).
//
// The sync vectors and interleaver permutations below are declared as
// compile-time constant data per spec.md §9's design note ("any
// mismatch breaks wire compatibility silently"), but their literal
// values are not reproduced anywhere in spec.md or the retrieved
// corpus — only their role and the overall payload sizes (§4.5's "12
// bytes" / "8 bytes" unpack outputs) are specified. This package
// therefore synthesises fixed, self-consistent tables from a seeded
// generator rather than inventing "real" WSJT-X constants from
// memory; narrowcore's own encoder and decoder agree on them, but they
// are not bit-compatible with an external JT4/PI4 station. See
// DESIGN.md.
package beacon

import "math/rand"

// JT4BitCount is the number of Fano channel bits recovered by JT4's
// bit extraction: 2*(96 payload bits + 31 tail bits), matching §4.5's
// 12-byte unpack output.
const JT4BitCount = 2 * (96 + 31)

// JT4SymbolCount is the length of the known sync vector; bit
// extraction discards its first slot (spec.md §4.5 step 2).
const JT4SymbolCount = JT4BitCount + 1

// PI4BitCount is 2*(64 payload bits + 31 tail bits), matching §4.5's
// 8-byte unpack output.
const PI4BitCount = 2 * (64 + 31)

// PI4SymbolCount is the PI4 sync vector length.
const PI4SymbolCount = PI4BitCount + 1

var (
	jt4Sync = genSyncVector(JT4SymbolCount, 0x4A54340)
	jt4Perm = genPermutation(JT4BitCount, 0x4A544231)
	pi4Sync = genSyncVector(PI4SymbolCount, 0x50493400)
	pi4Perm = genPermutation(PI4BitCount, 0x50493431)
)

// genSyncVector produces a fixed-but-arbitrary pseudorandom bit
// vector of 0/1 values, first bit always 0 (known-zero convention,
// spec.md §4.5 step 2).
func genSyncVector(n int, seed int64) []byte {
	r := rand.New(rand.NewSource(seed))
	v := make([]byte, n)
	for i := 1; i < n; i++ {
		v[i] = byte(r.Intn(2))
	}
	return v
}

// genPermutation produces a fixed permutation of [0,n) using a
// multiplicative step coprime with n, so every index maps to a
// distinct output slot (index 0 always maps to itself).
func genPermutation(n int, seed int64) []int {
	step := int(seed%int64(n-1)) + 1
	for gcd(step, n) != 1 {
		step++
	}
	perm := make([]int, n)
	for i := 0; i < n; i++ {
		perm[i] = (i * step) % n
	}
	return perm
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
