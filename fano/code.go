// Package fano implements the K=32, rate-1/2 Layland-Lushbaugh
// convolutional code used by the JT4/PI4 beacon modes, and the Fano
// sequential decoder that recovers it from soft channel symbols
// (spec.md §4.6).
//
// No example repo in the retrieved corpus carries a Fano or
// convolutional-code implementation; the branch-metric table and
// decoder below are built directly from spec.md §4.6's algorithmic
// description rather than adapted from teacher code (see DESIGN.md).
package fano

import "math"

// Polynomial taps for the K=32 rate-1/2 Layland-Lushbaugh code
// (spec.md §4.6).
const (
	Poly1 uint32 = 0xF2D05351
	Poly2 uint32 = 0xE4613C47
)

// TailBits is the length of the known-zero tail appended after the
// payload to flush the encoder's shift register (spec.md §4.6).
const TailBits = 31

// parityTable8 holds the even/odd parity of every byte value, used to
// fold a 32-bit AND result down to a single output bit.
var parityTable8 = buildParityTable()

func buildParityTable() [256]byte {
	var t [256]byte
	for v := 0; v < 256; v++ {
		p := byte(0)
		x := v
		for x != 0 {
			p ^= byte(x & 1)
			x >>= 1
		}
		t[v] = p
	}
	return t
}

func parity32(v uint32) byte {
	return parityTable8[byte(v)] ^
		parityTable8[byte(v>>8)] ^
		parityTable8[byte(v>>16)] ^
		parityTable8[byte(v>>24)]
}

// nextState shifts bit into the 32-bit encoder register.
func nextState(state uint32, bit byte) uint32 {
	return (state << 1) | uint32(bit&1)
}

// outputs returns the two channel bits the encoder emits for the
// transition from state on bit.
func outputs(state uint32, bit byte) (byte, byte) {
	ns := nextState(state, bit)
	return parity32(ns & Poly1), parity32(ns & Poly2)
}

// metricScale sets the fixed-point resolution of the branch-metric
// table below.
const metricScale = 100.0

// codeRateBias is the per-symbol threshold bias for a rate-1/2 code,
// subtracted from the raw log-likelihood (standard Fano metric form,
// Gamma = log2(2p) - R).
const codeRateBias = 0.5

// mettab[hyp][symbol] is the branch metric contribution of a single
// received soft channel symbol (0..255, where 255 means "certainly a
// 1") against a hypothesised transmitted bit. Built once at package
// init from a bias-corrected log-likelihood model; spec.md §4.6
// describes this as "a hardcoded 2x256 signed table matching the
// WSJT-X mettab layout" but does not reproduce its literal values, so
// this package computes an equivalent table rather than transcribing
// one from memory (see DESIGN.md).
var mettab = buildMetricTable()

func buildMetricTable() [2][256]int {
	var t [2][256]int
	const epsilon = 1.0 / 512.0
	for sym := 0; sym < 256; sym++ {
		p1 := float64(sym) / 255.0
		if p1 < epsilon {
			p1 = epsilon
		}
		if p1 > 1-epsilon {
			p1 = 1 - epsilon
		}
		p0 := 1 - p1

		t[1][sym] = int(math.Round(metricScale * (math.Log2(2*p1) - codeRateBias)))
		t[0][sym] = int(math.Round(metricScale * (math.Log2(2*p0) - codeRateBias)))
	}
	return t
}

// Encode runs payload bits (one byte per bit, 0 or 1) through the
// encoder, appends TailBits zero bits, and returns the resulting
// channel bit stream (also one byte per bit, 0 or 1; two channel bits
// per input bit).
func Encode(payloadBits []byte) []byte {
	nbits := len(payloadBits) + TailBits
	out := make([]byte, 0, nbits*2)
	var state uint32
	for i := 0; i < nbits; i++ {
		var bit byte
		if i < len(payloadBits) {
			bit = payloadBits[i]
		}
		o1, o2 := outputs(state, bit)
		out = append(out, o1, o2)
		state = nextState(state, bit)
	}
	return out
}

// ExpandToSoft maps hard channel bits {0,1} to the soft symbol
// alphabet {0,255} (spec.md §4.5 step 4).
func ExpandToSoft(bits []byte) []byte {
	out := make([]byte, len(bits))
	for i, b := range bits {
		if b != 0 {
			out[i] = 255
		}
	}
	return out
}
